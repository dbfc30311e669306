package xutil

import (
	"reflect"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Fills the xproto.Atom fields of the struct pointed by st. The field name is
// the atom name unless a `loadAtoms:"name"` tag is given. With onlyIfExists,
// atoms unknown to the server are left as xproto.AtomNone.
func LoadAtoms(conn *xgb.Conn, st any, onlyIfExists bool) error {
	val := reflect.Indirect(reflect.ValueOf(st))
	typ := val.Type()

	// request all before waiting on any reply
	cookies := make([]xproto.InternAtomCookie, typ.NumField())
	for i := range cookies {
		sf := typ.Field(i)
		name := sf.Name
		if tag := sf.Tag.Get("loadAtoms"); tag != "" {
			name = tag
		}
		cookies[i] = xproto.InternAtom(conn, onlyIfExists, uint16(len(name)), name)
	}
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return err
		}
		val.Field(i).Set(reflect.ValueOf(reply.Atom))
	}
	return nil
}
