package document

import (
	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/internal/style"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
	"github.com/google/uuid"
)

// ElementPatch describes a partial update to a freeform element. Nil
// fields are left unchanged.
type ElementPatch struct {
	Text      *string
	FontSize  *int
	Alignment *string
	Bold      *bool
	Label     *string
}

// Elements returns a copy of the freeform element list.
func (d *Document) Elements() []templatedoc.FreeformElement {
	out := make([]templatedoc.FreeformElement, len(d.elements))
	copy(out, d.elements)
	return out
}

// AddElement places a new freeform element of the given kind at the
// default offset, staggered by the current element count.
func (d *Document) AddElement(kind string) templatedoc.FreeformElement {
	defaults := catalog.Defaults(kind)
	offset := float64(len(d.elements)) * defaultElementStagger

	e := templatedoc.FreeformElement{
		ID:    uuid.New().String(),
		Kind:  kind,
		Label: catalog.Label(kind),
		Text:  style.String(nil, defaults, "text", catalog.Label(kind)),
		Position: templatedoc.Position{
			X: defaultElementX + offset,
			Y: defaultElementY + offset,
		},
		Size: templatedoc.Size{
			Width:  defaultElementWidth,
			Height: defaultElementHeight,
		},
		FontSize:  14,
		Alignment: "left",
	}
	d.elements = append(d.elements, e)
	return e
}

// MoveElement sets an element's absolute position. Positions are not
// clamped; off-canvas placement is allowed. Unknown id is a no-op.
func (d *Document) MoveElement(id string, x, y float64) bool {
	for i := range d.elements {
		if d.elements[i].ID == id {
			d.elements[i].Position = templatedoc.Position{X: x, Y: y}
			return true
		}
	}
	return false
}

// ResizeElement sets an element's advisory bounding box.
func (d *Document) ResizeElement(id string, width, height float64) bool {
	for i := range d.elements {
		if d.elements[i].ID == id {
			d.elements[i].Size = templatedoc.Size{Width: width, Height: height}
			return true
		}
	}
	return false
}

// UpdateElement applies a partial update to an element's direct style
// fields. Unknown id is a no-op.
func (d *Document) UpdateElement(id string, patch ElementPatch) bool {
	for i := range d.elements {
		if d.elements[i].ID != id {
			continue
		}
		if patch.Text != nil {
			d.elements[i].Text = *patch.Text
		}
		if patch.FontSize != nil {
			d.elements[i].FontSize = *patch.FontSize
		}
		if patch.Alignment != nil {
			d.elements[i].Alignment = *patch.Alignment
		}
		if patch.Bold != nil {
			d.elements[i].Bold = *patch.Bold
		}
		if patch.Label != nil {
			d.elements[i].Label = *patch.Label
		}
		return true
	}
	return false
}

// DeleteElement removes an element outright. Freeform mode has no trash
// and therefore no restore.
func (d *Document) DeleteElement(id string) bool {
	for i, e := range d.elements {
		if e.ID == id {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			if d.selection == id {
				d.selection = ""
			}
			return true
		}
	}
	return false
}
