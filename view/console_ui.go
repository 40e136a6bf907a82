package view

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-universe/model"
	"github.com/sheikhrachel/gol-universe/utils"
)

const (
	viewHeader = "header"
	viewStatus = "status"
	viewField  = "field"
	viewHelp   = "help"

	leftColumnWidth = 28
	minWindowHeight = 12
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// ConsoleUI is the interactive terminal front end.
// Every universe call happens on the gocui main loop goroutine; the run ticker
// only schedules ticks through Gui.Update.
type ConsoleUI struct {
	u      *model.Universe
	config utils.Config
	g      *gocui.Gui
	k      []keyBinding

	generation int
	lastTick   time.Duration
	running    bool
	stopCh     chan struct{}

	liveFiller string
	deadFiller string
}

// NewConsoleUI creates the terminal UI around u
func NewConsoleUI(u *model.Universe, config utils.Config) (*ConsoleUI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to create gui")
	}

	t := &ConsoleUI{
		u:          u,
		config:     config,
		g:          g,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}
	t.g.Mouse = true
	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Randomize", t.cmdRandomize, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell", t.cmdMouseClick, viewField},
	}
	t.g.SetManagerFunc(t.layout)

	for _, kb := range t.k {
		h := kb.handler
		if err = t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error {
			return h(v)
		}); err != nil {
			t.g.Close()
			return nil, errors.Wrapf(err, "[NewConsoleUI] failed to bind %s", kb.name)
		}
	}

	return t, nil
}

// Start runs the UI until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	defer t.stopRunning()

	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] gui main loop failed")
	}
	return nil
}

// refresh redraws the field and status panels, must run on the main loop
func (t *ConsoleUI) refresh(g *gocui.Gui) error {
	if v, err := g.View(viewField); err == nil {
		t.renderField(v)
	}
	if v, err := g.View(viewStatus); err == nil {
		t.renderStatus(v)
	}
	return nil
}

func (t *ConsoleUI) renderField(v *gocui.View) {
	v.Clear()

	var (
		cells      = t.u.Cells()
		maxW, maxH = v.Size()
		crop       = isCropped(cells.Width(), cells.Height(), maxW, maxH)
		b          bytes.Buffer
	)

	for row := uint(0); row < cells.Height(); row++ {
		if int(row) >= maxH {
			break
		}
		if row != 0 {
			b.WriteByte('\n')
		}
		if crop && int(row) == maxH-1 {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for col := uint(0); col < cells.Width(); col++ {
			if int(col) >= maxW {
				break
			}
			if cells.Alive(row, col) {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(v *gocui.View) {
	mode := aurora.Colorize("waiting", aurora.BlueFg).String()
	if t.running {
		mode = aurora.Colorize("running", aurora.CyanFg).String()
	}

	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", t.u.Width(), t.u.Height()))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", t.config.FrameRate))
	_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", t.generation))
	_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", t.u.LiveCells()))
	_, _ = fmt.Fprintln(v, t.renderProp("Tick time", "%v", t.lastTick.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", mode))
}

func (t *ConsoleUI) renderProp(name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueFormat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			return err
		}
		_ = g.DeleteView(viewStatus)
		_ = g.DeleteView(viewField)
		return nil
	}
	if err := t.headerLayout(g, 3, "Game of Life on a torus"); err != nil {
		return err
	}

	if v, err := g.SetView(viewStatus, 0, 3, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}

	if v, err := g.SetView(viewField, leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Universe"
		v.Frame = true
	}

	if v, err := g.SetView(viewHelp, -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return t.refresh(g)
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(viewHeader, -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	pad := max(0, (maxX-len(text))/2)
	_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	return nil
}

// step advances one generation, must run on the main loop
func (t *ConsoleUI) step() {
	start := time.Now()
	t.u.Tick()
	t.lastTick = time.Since(start)
	t.generation++
}

func (t *ConsoleUI) startRunning() {
	if t.running {
		return
	}
	t.running = true
	t.stopCh = make(chan struct{})

	go func(stopCh chan struct{}) {
		ticker := time.NewTicker(t.config.FrameRate)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				t.g.Update(func(g *gocui.Gui) error {
					if !t.running {
						return nil
					}
					t.step()
					if t.config.MaxGenerations > 0 && t.generation >= t.config.MaxGenerations {
						t.stopRunning()
					}
					return t.refresh(g)
				})
			}
		}
	}(t.stopCh)
}

func (t *ConsoleUI) stopRunning() {
	if !t.running {
		return
	}
	t.running = false
	close(t.stopCh)
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.step()
	return t.refresh(t.g)
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.startRunning()
	return t.refresh(t.g)
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.stopRunning()
	return t.refresh(t.g)
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.stopRunning()
	t.u.Clear()
	t.generation = 0
	return t.refresh(t.g)
}

func (t *ConsoleUI) cmdRandomize(_ *gocui.View) error {
	t.u.Randomize()
	return t.refresh(t.g)
}

// cmdMouseClick toggles the clicked cell; gocui has already moved the view cursor there
func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	maxW, maxH := v.Size()
	row, col, ok := clickedCell(cx, cy, t.u.Width(), t.u.Height(), maxW, maxH)
	if !ok {
		return nil
	}
	t.u.ToggleCell(row, col)
	return t.refresh(t.g)
}

// isCropped reports whether a width x height field overflows a maxW x maxH view
func isCropped(width, height uint, maxW, maxH int) bool {
	return int(width) > maxW || int(height) > maxH
}

// clickedCell maps a cursor position in the field view to the drawn cell under it.
// Clicks past the grid, outside the view or on the crop notice row hit no cell.
func clickedCell(cx, cy int, width, height uint, maxW, maxH int) (row, col uint, ok bool) {
	if cx < 0 || cy < 0 || cx >= maxW || cy >= maxH {
		return 0, 0, false
	}
	if cx >= int(width) || cy >= int(height) {
		return 0, 0, false
	}
	if isCropped(width, height, maxW, maxH) && cy == maxH-1 {
		return 0, 0, false
	}
	return uint(cy), uint(cx), true
}
