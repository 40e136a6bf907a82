package view

import "testing"

func TestClickedCell(t *testing.T) {
	tests := []struct {
		name          string
		cx, cy        int
		width, height uint
		maxW, maxH    int
		wantRow       uint
		wantCol       uint
		wantOK        bool
	}{
		{"inside grid", 6, 5, 64, 32, 100, 40, 5, 6, true},
		{"origin", 0, 0, 64, 32, 100, 40, 0, 0, true},
		{"last cell", 63, 31, 64, 32, 100, 40, 31, 63, true},
		{"right of grid", 70, 5, 64, 32, 100, 40, 0, 0, false},
		{"below grid", 5, 32, 64, 32, 100, 40, 0, 0, false},
		{"negative cursor", -1, 3, 64, 32, 100, 40, 0, 0, false},
		{"outside view", 50, 45, 64, 64, 100, 40, 0, 0, false},
		{"crop notice row", 3, 19, 64, 32, 100, 20, 0, 0, false},
		{"above crop notice", 3, 18, 64, 32, 100, 20, 18, 3, true},
		{"last row when not cropped", 3, 19, 64, 20, 100, 20, 19, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, ok := clickedCell(tt.cx, tt.cy, tt.width, tt.height, tt.maxW, tt.maxH)
			if ok != tt.wantOK || row != tt.wantRow || col != tt.wantCol {
				t.Fatalf("clickedCell(%d, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.cx, tt.cy, row, col, ok, tt.wantRow, tt.wantCol, tt.wantOK)
			}
		})
	}
}

func TestIsCropped(t *testing.T) {
	if isCropped(64, 32, 64, 32) {
		t.Fatal("field that fits exactly reported as cropped")
	}
	if !isCropped(65, 32, 64, 32) || !isCropped(64, 33, 64, 32) {
		t.Fatal("overflowing field not reported as cropped")
	}
}
