package synapticsmst

import (
	"errors"
	"reflect"
	"testing"
)

func buildTracedCascade(trace *[]string) (root, child, grandchild *simHub) {
	root = newSimHub("root", trace)
	child = newSimHub("child", trace)
	grandchild = newSimHub("grandchild", trace)
	root.attach(1, child)
	child.attach(2, grandchild)
	return root, child, grandchild
}

func TestEnableRemoteControlOrderIsRootFirst(t *testing.T) {
	var trace []string
	root, _, _ := buildTracedCascade(&trace)
	sess := newTestSession(root)

	rad := uint16(1) | uint16(2)<<2
	sess.ConfigureConnection(Address{Layer: 2, RAD: rad})
	if err := sess.EnableRemoteControl(); err != nil {
		t.Fatalf("EnableRemoteControl: %v", err)
	}

	want := []string{"root:enable", "child:enable", "grandchild:enable"}
	if !reflect.DeepEqual(trace, want) {
		t.Fatalf("want %v, got %v", want, trace)
	}
}

func TestDisableRemoteControlOrderIsLeafFirst(t *testing.T) {
	var trace []string
	root, child, grandchild := buildTracedCascade(&trace)
	root.rcEnabled = true
	child.rcEnabled = true
	grandchild.rcEnabled = true
	sess := newTestSession(root)

	rad := uint16(1) | uint16(2)<<2
	sess.ConfigureConnection(Address{Layer: 2, RAD: rad})
	if err := sess.DisableRemoteControl(); err != nil {
		t.Fatalf("DisableRemoteControl: %v", err)
	}

	want := []string{"grandchild:disable", "child:disable", "root:disable"}
	if !reflect.DeepEqual(trace, want) {
		t.Fatalf("want %v, got %v", want, trace)
	}
}

func TestEnableRemoteControlAbortsOnFirstFailure(t *testing.T) {
	root := newSimHub("root", nil)
	child := newSimHub("child", nil)
	root.attach(1, child)
	// child never completes -> times out -> enable must abort before
	// ever reaching a (nonexistent) grandchild.
	child.neverCompletes = true
	sess := newTestSession(root)

	sess.ConfigureConnection(Address{Layer: 1, RAD: 1})
	err := sess.EnableRemoteControl()
	if !errors.Is(err, ErrRCTimeout) {
		t.Fatalf("want ErrRCTimeout, got %v", err)
	}
	if !root.rcEnabled {
		t.Fatalf("root should have been enabled before the failing child")
	}
	// The session's address should be restored to what it was before
	// EnableRemoteControl was called.
	if sess.addr != (Address{Layer: 1, RAD: 1}) {
		t.Fatalf("address not restored: %+v", sess.addr)
	}
}
