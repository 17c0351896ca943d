package document

import (
	"testing"

	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

func TestAddElement_DefaultPlacement(t *testing.T) {
	d := New(templatedoc.KindInvoice, templatedoc.ModeFreeform)

	first := d.AddElement("customText")
	second := d.AddElement("customText")

	if first.Position.X != defaultElementX || first.Position.Y != defaultElementY {
		t.Errorf("Expected default offset, got %+v", first.Position)
	}
	if second.Position.X <= first.Position.X {
		t.Error("Expected staggered placement for subsequent elements")
	}
	if first.ID == second.ID {
		t.Error("Expected distinct element ids")
	}
	if first.Text != "Your text here" {
		t.Errorf("Expected catalog text default, got %q", first.Text)
	}
}

func TestMoveElement_NoClamping(t *testing.T) {
	d := New(templatedoc.KindInvoice, templatedoc.ModeFreeform)
	e := d.AddElement("header")

	if !d.MoveElement(e.ID, -250, 5000) {
		t.Fatal("Expected move to apply")
	}

	got := d.Elements()[0].Position
	if got.X != -250 || got.Y != 5000 {
		t.Errorf("Off-canvas positions must be kept verbatim, got %+v", got)
	}

	if d.MoveElement("missing", 0, 0) {
		t.Error("Expected move of unknown id to be a no-op")
	}
}

func TestUpdateElement_PartialPatch(t *testing.T) {
	d := New(templatedoc.KindInvoice, templatedoc.ModeFreeform)
	e := d.AddElement("customText")

	text := "Paid in full"
	bold := true
	if !d.UpdateElement(e.ID, ElementPatch{Text: &text, Bold: &bold}) {
		t.Fatal("Expected update to apply")
	}

	got := d.Elements()[0]
	if got.Text != "Paid in full" || !got.Bold {
		t.Errorf("Expected patched fields applied, got %+v", got)
	}
	if got.FontSize != 14 || got.Alignment != "left" {
		t.Error("Unpatched fields must be left unchanged")
	}
}

func TestDeleteElement_NoTrash(t *testing.T) {
	d := New(templatedoc.KindInvoice, templatedoc.ModeFreeform)
	e := d.AddElement("customText")
	d.Select(e.ID)

	if !d.DeleteElement(e.ID) {
		t.Fatal("Expected delete to apply")
	}
	if len(d.Elements()) != 0 {
		t.Error("Expected element removed")
	}
	if len(d.Trash()) != 0 {
		t.Error("Freeform mode must not use the trash")
	}
	if d.Selection() != "" {
		t.Error("Deleting the selected element must clear the selection")
	}

	if d.DeleteElement(e.ID) {
		t.Error("Expected second delete to be a no-op")
	}
}

func TestResizeElement(t *testing.T) {
	d := New(templatedoc.KindInvoice, templatedoc.ModeFreeform)
	e := d.AddElement("customText")

	if !d.ResizeElement(e.ID, 320, 80) {
		t.Fatal("Expected resize to apply")
	}
	got := d.Elements()[0].Size
	if got.Width != 320 || got.Height != 80 {
		t.Errorf("Expected size applied, got %+v", got)
	}
}

func TestFreeformSnapshot_RoundTrip(t *testing.T) {
	d := New(templatedoc.KindReceipt, templatedoc.ModeFreeform)
	d.SetName("Canvas Receipt")
	e := d.AddElement("customText")
	d.MoveElement(e.ID, 120, 300)

	snap := d.Snapshot()
	if snap.Mode != templatedoc.ModeFreeform {
		t.Errorf("Expected freeform mode, got %s", snap.Mode)
	}
	if len(snap.Elements) != 1 || snap.Elements[0].Position.X != 120 {
		t.Error("Snapshot must carry element positions")
	}

	reloaded := FromSnapshot(snap)
	if len(reloaded.Elements()) != 1 {
		t.Error("FromSnapshot must restore elements")
	}
}
