package fswatcher

import "strings"

type Event struct {
	Op   Op
	Name string
}

//----------

type Op uint16

const (
	Attrib Op = 1 << iota
	Create
	Modify // write, truncate
	Remove
	Rename

	AllOps Op = Attrib | Create | Modify | Remove | Rename
)

func (op Op) HasAny(op2 Op) bool { return op&op2 != 0 }

func (op Op) String() string {
	names := []string{"attrib", "create", "modify", "remove", "rename"}
	u := []string{}
	for i, n := range names {
		if op.HasAny(1 << i) {
			u = append(u, n)
		}
	}
	return strings.Join(u, "|")
}
