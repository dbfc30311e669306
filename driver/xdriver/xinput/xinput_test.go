package xinput

import (
	"image"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/barclock/util/uiutil/event"
)

func TestButtonPress(t *testing.T) {
	ev := &xproto.ButtonPressEvent{
		Detail: 3,
		EventX: 10,
		EventY: 20,
		State:  xproto.KeyButMaskShift | xproto.KeyButMaskControl,
	}
	wi := ButtonPress(ev)
	if wi.Point != image.Pt(10, 20) {
		t.Fatal(wi.Point)
	}
	md, ok := wi.Event.(*event.MouseDown)
	if !ok {
		t.Fatalf("%T", wi.Event)
	}
	if md.Button != event.ButtonRight {
		t.Fatal(md.Button)
	}
	if md.Mods != event.ModShift|event.ModCtrl {
		t.Fatal(md.Mods)
	}
}

func TestTranslateButton(t *testing.T) {
	if b := TranslateButton(4); b != event.ButtonWheelUp {
		t.Fatal(b)
	}
	if b := TranslateButton(42); b != event.ButtonNone {
		t.Fatal(b)
	}
}
