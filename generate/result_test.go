package generate

import (
	"errors"
	"testing"
)

func TestBuildResult(t *testing.T) {
	cb := &fakeClipboard{}
	r := BuildResult("Hi there", "images/icon.dark.png", cb)

	if r.Title != CopyTitle {
		t.Errorf("expected title %q, got %q", CopyTitle, r.Title)
	}
	if r.SubTitle != "Hi there" {
		t.Errorf("expected subtitle %q, got %q", "Hi there", r.SubTitle)
	}
	if r.IcoPath != "images/icon.dark.png" {
		t.Errorf("unexpected icon %q", r.IcoPath)
	}
	if len(cb.Copied()) != 0 {
		t.Fatal("building a result must not copy anything")
	}

	if !r.Action() {
		t.Error("expected action to report success")
	}
	if copied := cb.Copied(); len(copied) != 1 || copied[0] != "Hi there" {
		t.Errorf("expected reply copied once, got %v", copied)
	}
}

func TestBuildResultActionReportsClipboardFailure(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no clipboard")}
	r := BuildResult("x", "", cb)
	if r.Action() {
		t.Error("expected action to report failure")
	}
}

func TestBuildFailure(t *testing.T) {
	cb := &fakeClipboard{}
	r := BuildFailure(errors.New("chat request failed: connection refused"), "icon.png", cb)
	if r.Title != FailureTitle {
		t.Errorf("expected title %q, got %q", FailureTitle, r.Title)
	}
	if r.SubTitle != "chat request failed: connection refused" {
		t.Errorf("unexpected subtitle %q", r.SubTitle)
	}
	if !r.Action() {
		t.Error("expected action to succeed")
	}
	if copied := cb.Copied(); len(copied) != 1 || copied[0] != r.SubTitle {
		t.Errorf("expected error message copied, got %v", copied)
	}
}

func TestContextMenu(t *testing.T) {
	cb := &fakeClipboard{}
	menu := ContextMenu("test ai response", "icon.png", cb)
	if len(menu) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(menu))
	}
	if menu[0].Title != "Copy (Enter)" {
		t.Errorf("expected %q, got %q", "Copy (Enter)", menu[0].Title)
	}
	menu[0].Action()
	if copied := cb.Copied(); len(copied) != 1 || copied[0] != "test ai response" {
		t.Errorf("expected context data copied, got %v", copied)
	}
}

func TestWireResultsNeverNil(t *testing.T) {
	if got := WireResults(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
	got := WireResults([]Result{BuildResult("a", "i", &fakeClipboard{})})
	if len(got) != 1 || got[0].SubTitle != "a" || got[0].ContextData != "a" || got[0].Title != CopyTitle {
		t.Errorf("unexpected wire results %+v", got)
	}
}
