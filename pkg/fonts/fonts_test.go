package fonts

import "testing"

func TestGoRegular(t *testing.T) {
	f, err := GoRegular()
	if err != nil {
		t.Fatalf("GoRegular() error = %v", err)
	}
	again, _ := GoRegular()
	if f != again {
		t.Error("GoRegular() should return the cached font")
	}
	if len(GoRegularTTF()) == 0 {
		t.Error("GoRegularTTF() is empty")
	}
}

func TestFace(t *testing.T) {
	face, err := Face(13)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	defer face.Close()
	if h := face.Metrics().Height.Ceil(); h < 10 || h > 20 {
		t.Errorf("line height = %d, want about 13", h)
	}
}
