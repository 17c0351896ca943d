package draft

// Property editing is decoupled from the canonical document: BeginEdit
// opens a local edit draft, per-keystroke changes land in that draft,
// and only ConfirmEdit merges them back. CancelEdit discards the draft
// without touching the document.

// BeginEdit opens an edit draft for the section with the given id and
// selects it. An unknown id is a no-op.
func (c *Controller) BeginEdit(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state == StateSaving {
		return false
	}

	for _, s := range c.doc.Sections() {
		if s.ID == id {
			c.editID = id
			c.editDraft = make(map[string]any)
			c.doc.Select(id)
			return true
		}
	}
	return false
}

// SetEditProperty records a pending property change in the edit draft.
// The canonical document is not touched.
func (c *Controller) SetEditProperty(key string, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editID == "" {
		return false
	}
	c.editDraft[key] = value
	return true
}

// EditingSection returns the id of the section currently under edit,
// empty when no edit draft is open.
func (c *Controller) EditingSection() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editID
}

// ConfirmEdit merges the edit draft into the section's properties and
// closes the draft. Confirming an empty draft is a no-op that still
// closes it.
func (c *Controller) ConfirmEdit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editID == "" || c.state == StateSaving || c.closed {
		return false
	}

	id, patch := c.editID, c.editDraft
	c.editID = ""
	c.editDraft = nil

	if len(patch) == 0 {
		return true
	}
	if !c.doc.UpdateProperties(id, patch) {
		// Section was deleted while the draft was open
		return false
	}
	c.markDirtyLocked()
	return true
}

// CancelEdit discards the edit draft. Pending changes are lost; the
// document is unchanged.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editID = ""
	c.editDraft = nil
}
