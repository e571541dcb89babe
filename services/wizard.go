package services

import (
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// SystemType selects the camera technology for a kit or quotation. Wifi
// systems record on-camera, so the recorder step disappears for them.
type SystemType string

const (
	SystemAnalog SystemType = "analog"
	SystemIP     SystemType = "ip"
	SystemWifi   SystemType = "wifi"
)

// SystemTypes lists the selectable system types.
func SystemTypes() []SystemType {
	return []SystemType{SystemAnalog, SystemIP, SystemWifi}
}

// Draft is the in-progress kit or quotation record owned by a single wizard
// session until submission.
type Draft struct {
	Kind string // "kit" or "quotation"

	// Identity / customer fields.
	Name         string
	Phone        string
	Email        string
	Address      string
	Notes        string
	Description  string
	Highlights   []string
	SystemType   SystemType
	ChannelCount int
	SellingPrice float64
	Status       string

	Items ItemList
}

// DraftPatch is a partial Draft update. Nil fields are left untouched.
type DraftPatch struct {
	Name         *string     `json:"name,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	Email        *string     `json:"email,omitempty"`
	Address      *string     `json:"address,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Highlights   *[]string   `json:"highlights,omitempty"`
	SystemType   *SystemType `json:"system_type,omitempty"`
	ChannelCount *int        `json:"channel_count,omitempty"`
	SellingPrice *float64    `json:"selling_price,omitempty"`
	Status       *string     `json:"status,omitempty"`
}

// Step is one entry in the declarative wizard step table. Visible is a pure
// predicate over the draft; a nil predicate means always visible. Validate
// returns the human-readable problems blocking Advance past this step; a nil
// validator never blocks.
type Step struct {
	Key         string
	Title       string
	Description string
	Category    Category
	Visible     func(*Draft) bool
	Validate    func(*Draft) []string
}

// StepKeyReview is the terminal pseudo-step that runs the full-record
// checklist before submission.
const StepKeyReview = "review"

func recorderVisible(d *Draft) bool { return d.SystemType != SystemWifi }

// KitSteps returns the step table for the kit builder wizard.
func KitSteps() []Step {
	return []Step{
		{
			Key:         "system",
			Title:       "System Type",
			Description: "Choose the camera technology and channel count.",
			Validate: func(d *Draft) []string {
				var msgs []string
				if d.SystemType == "" {
					msgs = append(msgs, "Select a system type")
				}
				if d.ChannelCount <= 0 {
					msgs = append(msgs, "Select a channel count")
				}
				return msgs
			},
		},
		{
			Key:      "cameras",
			Title:    "Cameras",
			Category: CategoryCamera,
			Validate: func(d *Draft) []string {
				if !d.Items.HasCategory(CategoryCamera) {
					return []string{"Add at least one camera"}
				}
				return nil
			},
		},
		{
			Key:      "recorder",
			Title:    "Recorder",
			Category: CategoryRecorder,
			Visible:  recorderVisible,
			Validate: func(d *Draft) []string {
				if !d.Items.HasCategory(CategoryRecorder) {
					return []string{"Add a DVR/NVR"}
				}
				return nil
			},
		},
		{
			Key:      "storage",
			Title:    "Storage",
			Category: CategoryStorage,
		},
		{
			Key:      "cabling",
			Title:    "Cables & Accessories",
			Category: CategoryCable,
		},
		{
			Key:      "power",
			Title:    "Power",
			Category: CategoryPower,
		},
		{
			Key:   "details",
			Title: "Kit Details",
			Validate: func(d *Draft) []string {
				if d.Name == "" {
					return []string{"Kit name is required"}
				}
				return nil
			},
		},
		{
			Key:   StepKeyReview,
			Title: "Review & Save",
		},
	}
}

// QuotationSteps returns the step table for the quotation wizard. It shares
// the hardware steps with the kit builder but collects customer details.
func QuotationSteps() []Step {
	steps := KitSteps()
	for i := range steps {
		if steps[i].Key == "details" {
			steps[i].Title = "Customer Details"
			steps[i].Validate = func(d *Draft) []string {
				var msgs []string
				if d.Name == "" {
					msgs = append(msgs, "Customer name is required")
				}
				if d.Address == "" {
					msgs = append(msgs, "Installation address is required")
				}
				return msgs
			}
		}
	}
	return steps
}

// Wizard drives multi-step draft entry over a declarative step table.
// Conditional steps are recomputed from the draft on every access, so a
// system-type change immediately adds or removes the recorder step.
type Wizard struct {
	steps   []Step
	draft   *Draft
	current string
	reached map[string]bool
}

// NewWizard starts a wizard on the first visible step of the table.
func NewWizard(steps []Step, draft *Draft) *Wizard {
	w := &Wizard{
		steps:   steps,
		draft:   draft,
		reached: make(map[string]bool),
	}
	visible := w.VisibleSteps()
	if len(visible) > 0 {
		w.current = visible[0].Key
		w.reached[w.current] = true
	}
	return w
}

// Draft returns the mutable draft record owned by this wizard.
func (w *Wizard) Draft() *Draft { return w.draft }

// VisibleSteps returns the steps whose predicate passes for the current
// draft, in table order.
func (w *Wizard) VisibleSteps() []Step {
	var visible []Step
	for _, s := range w.steps {
		if s.Visible == nil || s.Visible(w.draft) {
			visible = append(visible, s)
		}
	}
	return visible
}

// Current returns the active step.
func (w *Wizard) Current() Step {
	visible := w.VisibleSteps()
	for _, s := range visible {
		if s.Key == w.current {
			return s
		}
	}
	// The current step was hidden by a draft change; fall back to the first
	// visible step.
	if len(visible) > 0 {
		return visible[0]
	}
	return Step{}
}

// OnReview reports whether the wizard sits on the terminal review step.
func (w *Wizard) OnReview() bool { return w.Current().Key == StepKeyReview }

// Advance validates the current step and, if it passes, moves to the next
// visible step. Validation problems are returned as messages and block the
// move; at the last step Advance is a no-op.
func (w *Wizard) Advance() []string {
	cur := w.Current()
	if cur.Validate != nil {
		if msgs := cur.Validate(w.draft); len(msgs) > 0 {
			return msgs
		}
	}
	visible := w.VisibleSteps()
	for i, s := range visible {
		if s.Key == cur.Key && i+1 < len(visible) {
			w.current = visible[i+1].Key
			w.reached[w.current] = true
			break
		}
	}
	return nil
}

// Retreat moves to the previous visible step. It is always allowed and is a
// no-op on the first step.
func (w *Wizard) Retreat() {
	visible := w.VisibleSteps()
	for i, s := range visible {
		if s.Key == w.Current().Key && i > 0 {
			w.current = visible[i-1].Key
			return
		}
	}
}

// JumpTo moves directly to a visible step that was already reached in this
// session, or whose preceding steps all validate against the current draft.
// The second gate matters when a wizard is seeded from a stored record: the
// draft already satisfies the earlier steps, so every populated step is
// jumpable without replaying Advance. Other jumps are rejected; the caller
// disables those controls rather than reporting an error.
func (w *Wizard) JumpTo(key string) bool {
	visible := w.VisibleSteps()
	idx := -1
	for i, s := range visible {
		if s.Key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if !w.reached[key] && !stepsValidate(visible[:idx], w.draft) {
		return false
	}
	w.current = key
	w.reached[key] = true
	return true
}

func stepsValidate(steps []Step, d *Draft) bool {
	for _, s := range steps {
		if s.Validate != nil && len(s.Validate(d)) > 0 {
			return false
		}
	}
	return true
}

// UpdateDraft shallow-merges patch into the draft. The visible step list is
// derived from the draft, so predicates pick up the change on next access;
// if the current step was hidden, Current falls back deterministically.
func (w *Wizard) UpdateDraft(patch DraftPatch) {
	d := w.draft
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Phone != nil {
		d.Phone = *patch.Phone
	}
	if patch.Email != nil {
		d.Email = *patch.Email
	}
	if patch.Address != nil {
		d.Address = *patch.Address
	}
	if patch.Notes != nil {
		d.Notes = *patch.Notes
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.Highlights != nil {
		d.Highlights = *patch.Highlights
	}
	if patch.SystemType != nil {
		d.SystemType = *patch.SystemType
	}
	if patch.ChannelCount != nil {
		d.ChannelCount = *patch.ChannelCount
	}
	if patch.SellingPrice != nil {
		d.SellingPrice = *patch.SellingPrice
	}
	if patch.Status != nil {
		d.Status = *patch.Status
	}
	w.current = w.Current().Key
}

// Review runs the full-record checklist. Submission stays blocked until it
// returns no messages.
func (w *Wizard) Review() []string {
	d := w.draft
	var msgs []string

	rules := []*validation.FieldRules{
		validation.Field(&d.Name, validation.Required.Error("name is required")),
		validation.Field(&d.SystemType, validation.Required.Error("system type is required"),
			validation.In(SystemAnalog, SystemIP, SystemWifi).Error("unknown system type")),
		validation.Field(&d.ChannelCount, validation.Min(1).Error("channel count must be at least 1")),
		validation.Field(&d.SellingPrice, validation.Min(0.0).Error("selling price cannot be negative")),
	}
	if d.Kind == "quotation" {
		rules = append(rules,
			validation.Field(&d.Address, validation.Required.Error("installation address is required")),
			validation.Field(&d.Email, validation.When(d.Email != "", is.EmailFormat.Error("email address is invalid"))),
		)
	}
	if err := validation.ValidateStruct(d, rules...); err != nil {
		if errs, ok := err.(validation.Errors); ok {
			fields := make([]string, 0, len(errs))
			for f := range errs {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				msgs = append(msgs, errs[f].Error())
			}
		} else {
			msgs = append(msgs, err.Error())
		}
	}

	if d.Items.Len() == 0 {
		msgs = append(msgs, "add at least one item")
	}
	for i, it := range d.Items.Items() {
		if it.Qty <= 0 {
			msgs = append(msgs, fmt.Sprintf("item %d (%s): quantity must be positive", i+1, it.Name))
		}
	}
	if recorderVisible(d) && !d.Items.HasCategory(CategoryRecorder) {
		msgs = append(msgs, "add a DVR/NVR for analog and IP systems")
	}
	return msgs
}
