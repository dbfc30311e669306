package xinput

import (
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/barclock/util/uiutil/event"
)

func ButtonPress(ev *xproto.ButtonPressEvent) *event.WindowInput {
	p := image.Point{int(ev.EventX), int(ev.EventY)}
	b := TranslateButton(ev.Detail)
	m := TranslateModifiers(ev.State)
	return &event.WindowInput{Point: p, Event: &event.MouseDown{Point: p, Button: b, Mods: m}}
}

func ButtonRelease(ev *xproto.ButtonReleaseEvent) *event.WindowInput {
	p := image.Point{int(ev.EventX), int(ev.EventY)}
	b := TranslateButton(ev.Detail)
	m := TranslateModifiers(ev.State)
	return &event.WindowInput{Point: p, Event: &event.MouseUp{Point: p, Button: b, Mods: m}}
}

func EnterNotify(ev *xproto.EnterNotifyEvent) *event.WindowInput {
	p := image.Point{int(ev.EventX), int(ev.EventY)}
	return &event.WindowInput{Point: p, Event: &event.MouseEnter{}}
}

func LeaveNotify(ev *xproto.LeaveNotifyEvent) *event.WindowInput {
	p := image.Point{int(ev.EventX), int(ev.EventY)}
	return &event.WindowInput{Point: p, Event: &event.MouseLeave{}}
}

//----------

func TranslateModifiers(v uint16) event.KeyModifiers {
	pairs := []struct {
		a uint16
		b event.KeyModifiers
	}{
		{xproto.KeyButMaskShift, event.ModShift},
		{xproto.KeyButMaskLock, event.ModLock},
		{xproto.KeyButMaskControl, event.ModCtrl},
		{xproto.KeyButMaskMod1, event.Mod1},
		{xproto.KeyButMaskMod2, event.Mod2},
		{xproto.KeyButMaskMod3, event.Mod3},
		{xproto.KeyButMaskMod4, event.Mod4},
		{xproto.KeyButMaskMod5, event.Mod5},
	}
	var w event.KeyModifiers
	for _, p := range pairs {
		if v&p.a > 0 {
			w |= p.b
		}
	}
	return w
}

func TranslateButton(xb xproto.Button) event.MouseButton {
	switch xb {
	case 1:
		return event.ButtonLeft
	case 2:
		return event.ButtonMiddle
	case 3:
		return event.ButtonRight
	case 4:
		return event.ButtonWheelUp
	case 5:
		return event.ButtonWheelDown
	case 6:
		return event.ButtonWheelLeft
	case 7:
		return event.ButtonWheelRight
	case 8:
		return event.ButtonBackward
	case 9:
		return event.ButtonForward
	}
	return event.ButtonNone
}
