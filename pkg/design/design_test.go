package design

import (
	"errors"
	"strings"
	"testing"

	"github.com/chazu/joinery/pkg/face"
)

func rectFace(t *testing.T, w, h float64) face.ClosedFace {
	t.Helper()
	base := face.TurnOpts{Level: face.TurnBase}
	c, err := face.New(face.Options{TabWidth: 3}).
		NoTabs(h).Right(90, base).
		NoTabs(w).Right(90, base).
		NoTabs(h).Right(90, base).
		NoTabs(w).Right(90, base).
		Close()
	if err != nil {
		t.Fatalf("closing rectangle: %v", err)
	}
	return c
}

func TestAddFaceAndLookup(t *testing.T) {
	d := New()
	if err := d.AddFace("lid", rectFace(t, 40, 20)); err != nil {
		t.Fatal(err)
	}
	if err := d.AddFace("bottom", rectFace(t, 40, 20)); err != nil {
		t.Fatal(err)
	}

	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
	if _, ok := d.Face("lid"); !ok {
		t.Error("lid not found")
	}
	if _, ok := d.Face("side"); ok {
		t.Error("unexpected face found")
	}

	names := d.Names()
	if len(names) != 2 || names[0] != "lid" || names[1] != "bottom" {
		t.Errorf("Names = %v, want definition order [lid bottom]", names)
	}
	names[0] = "mutated"
	if d.Names()[0] != "lid" {
		t.Error("Names must return a copy")
	}
}

func TestAddFaceErrors(t *testing.T) {
	d := New()
	if err := d.AddFace("", rectFace(t, 10, 10)); err == nil {
		t.Error("empty name accepted")
	}
	if err := d.AddFace("lid", rectFace(t, 10, 10)); err != nil {
		t.Fatal(err)
	}
	err := d.AddFace("lid", rectFace(t, 10, 10))
	if !errors.Is(err, ErrDuplicateFace) {
		t.Errorf("got %v, want ErrDuplicateFace", err)
	}
	if d.Len() != 1 {
		t.Errorf("failed adds must not register, Len = %d", d.Len())
	}
}

func TestValidateEmptyDesign(t *testing.T) {
	fs := New().Validate()
	if len(fs) != 1 || fs[0].Severity != SeverityWarning {
		t.Fatalf("findings = %v, want one warning", fs)
	}
}

func TestValidateCleanDesign(t *testing.T) {
	d := New()
	if err := d.AddFace("lid", rectFace(t, 40, 20)); err != nil {
		t.Fatal(err)
	}
	if fs := d.Validate(); len(fs) != 0 {
		t.Errorf("unexpected findings: %v", fs)
	}
}

func TestValidateDegenerateOutline(t *testing.T) {
	// Out and straight back: the outline closes but has zero width.
	base := face.TurnOpts{Level: face.TurnBase}
	c, err := face.New(face.Options{TabWidth: 3}).
		NoTabs(10).Right(180, base).
		NoTabs(10).Right(180, base).
		Close()
	if err != nil {
		t.Fatal(err)
	}

	d := New()
	if err := d.AddFace("sliver", c); err != nil {
		t.Fatal(err)
	}
	fs := d.Validate()
	if len(fs) != 1 || fs[0].Severity != SeverityWarning {
		t.Fatalf("findings = %v, want one warning", fs)
	}
	if fs[0].Face != "sliver" {
		t.Errorf("finding names face %q, want sliver", fs[0].Face)
	}
}

func TestValidateNoDrawableCommands(t *testing.T) {
	// Four turns in place close the pose without drawing anything.
	base := face.TurnOpts{Level: face.TurnBase}
	c, err := face.New(face.Options{TabWidth: 3}).
		Right(90, base).Right(90, base).Right(90, base).Right(90, base).
		Close()
	if err != nil {
		t.Fatal(err)
	}

	d := New()
	if err := d.AddFace("ghost", c); err != nil {
		t.Fatal(err)
	}
	fs := d.Validate()
	if len(fs) != 1 || fs[0].Severity != SeverityError {
		t.Fatalf("findings = %v, want one error", fs)
	}
}

func TestFindingString(t *testing.T) {
	f := Finding{Face: "lid", Message: "bad", Severity: SeverityError}
	if got := f.String(); !strings.Contains(got, "lid") || !strings.Contains(got, "error") {
		t.Errorf("String = %q", got)
	}
	f = Finding{Message: "empty", Severity: SeverityWarning}
	if got := f.String(); strings.Contains(got, "face") {
		t.Errorf("design-level finding must not name a face: %q", got)
	}
}
