package wmprotocols

import (
	"encoding/binary"
	"log"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/barclock/driver/xdriver/xutil"
)

// https://tronche.com/gui/x/icccm/sec-4.html#s-4.2.8.1

type WMP struct {
	conn *xgb.Conn
	win  xproto.Window
}

// Registers WM_DELETE_WINDOW so the window manager asks before killing the
// connection.
func NewWMP(conn *xgb.Conn, win xproto.Window) (*WMP, error) {
	if err := xutil.LoadAtoms(conn, &atoms, false); err != nil {
		return nil, err
	}
	wmp := &WMP{conn: conn, win: win}
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, uint32(atoms.WM_DELETE_WINDOW))
	cookie := xproto.ChangePropertyChecked(
		conn,
		xproto.PropModeAppend,
		win,
		atoms.WM_PROTOCOLS, // property
		xproto.AtomAtom,    // type
		32,                 // format
		uint32(len(data))/4,
		data)
	if err := cookie.Check(); err != nil {
		return nil, err
	}
	return wmp, nil
}

func (wmp *WMP) IsDeleteWindow(ev *xproto.ClientMessageEvent) bool {
	if ev.Type != atoms.WM_PROTOCOLS {
		return false
	}
	if ev.Format != 32 {
		log.Printf("wmp: client message format not 32: %+v", ev)
		return false
	}
	return xproto.Atom(ev.Data.Data32[0]) == atoms.WM_DELETE_WINDOW
}

var atoms struct {
	WM_PROTOCOLS     xproto.Atom
	WM_DELETE_WINDOW xproto.Atom
}
