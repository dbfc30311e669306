package iout

import (
	"errors"
	"strings"
	"testing"
)

var errTest1 = errors.New("err-a")
var errTest2 = errors.New("err-b")

func TestMultiError1(t *testing.T) {
	if err := MultiErrors(nil, nil); err != nil {
		t.Fatal(err)
	}
	err := MultiErrors(nil, errTest1)
	if err.Error() != "err-a" {
		t.Fatal(err)
	}
}

func TestMultiError2(t *testing.T) {
	err := MultiErrors(errTest1, errTest2)
	if !errors.Is(err, errTest2) {
		t.Fatal(err)
	}
	s := err.Error()
	if !strings.HasPrefix(s, "multierror(2)") || !strings.Contains(s, "err2: err-b") {
		t.Fatal(s)
	}
}

type testCloser struct {
	name  string
	order *[]string
	err   error
}

func (c *testCloser) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func TestMultiClose(t *testing.T) {
	order := []string{}
	mc := &MultiClose{}
	mc.Add(&testCloser{"a", &order, nil})
	mc.Add(&testCloser{"b", &order, errTest2})
	mc.Add(&testCloser{"c", &order, nil})

	err := mc.CloseAll()
	if !errors.Is(err, errTest2) {
		t.Fatal(err)
	}
	if strings.Join(order, "") != "cba" {
		t.Fatal(order)
	}
	// second call is a no-op
	if err := mc.CloseAll(); err != nil || len(order) != 3 {
		t.Fatal(err, order)
	}
}
