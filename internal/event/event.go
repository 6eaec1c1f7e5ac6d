// Package event defines the file change event model shared by the watcher,
// coalescer and command dispatcher.
package event

// Op is the top-level classification of a file system change.
type Op int

const (
	Create Op = iota
	Modify
	Remove
	Other
)

// ModifyKind refines Modify events. Name covers rename-class notifications,
// which some editors and GUIs emit instead of Remove when deleting a file.
type ModifyKind int

const (
	ModifyData ModifyKind = iota
	ModifyName
	ModifyOther
)

// Kind is the full event classification. Modify is only meaningful when
// Op == Modify; it is kept as a separate field rather than flattened into Op
// because the rename-to-delete heuristic needs to distinguish Modify/Name
// from other modifications.
type Kind struct {
	Op     Op
	Modify ModifyKind
}

// Raw is a change notification as delivered by the notifier: a kind plus the
// absolute paths it affects.
type Raw struct {
	Kind  Kind
	Paths []string
}

// TemplateType returns the event type string exposed to command templates.
func (k Kind) TemplateType() string {
	switch k.Op {
	case Create:
		return "create"
	case Modify:
		return "modify"
	case Remove:
		return "delete"
	default:
		return "change"
	}
}

func (o Op) String() string {
	switch o {
	case Create:
		return "create"
	case Modify:
		return "modify"
	case Remove:
		return "remove"
	default:
		return "other"
	}
}
