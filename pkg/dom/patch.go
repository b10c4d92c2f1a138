package dom

// PatchOp identifies a primitive node operation. Recording and remote hosts
// describe every call they receive as a Patch.
type PatchOp uint8

const (
	PatchSetText          PatchOp = 0x01 // Update text content
	PatchCreateElement    PatchOp = 0x02 // Create element node
	PatchInsertNode       PatchOp = 0x04 // Insert node before anchor
	PatchRemoveNode       PatchOp = 0x05 // Remove node
	PatchReplaceNode      PatchOp = 0x07 // Replace node entirely
	PatchCreateText       PatchOp = 0x30 // Create text node
	PatchCreateEmpty      PatchOp = 0x31 // Create placeholder node
	PatchCreateFragment   PatchOp = 0x32 // Create fragment with begin/tail markers
	PatchDecorateFragment PatchOp = 0x33 // Add markers to an existing fragment
	PatchAppendNode       PatchOp = 0x34 // Append node to parent
	PatchReplaceFragment  PatchOp = 0x35 // Replace fragment range
	PatchRemoveFragment   PatchOp = 0x36 // Gather fragment range back
	PatchReleaseFragment  PatchOp = 0x37 // Drop fragment bookkeeping
	PatchNewListener      PatchOp = 0x40 // Register native listener
	PatchListen           PatchOp = 0x41 // Attach listener to node
	PatchReleaseListener  PatchOp = 0x42 // Unregister native listener
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchCreateElement:
		return "CreateElement"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	case PatchCreateText:
		return "CreateText"
	case PatchCreateEmpty:
		return "CreateEmpty"
	case PatchCreateFragment:
		return "CreateFragment"
	case PatchDecorateFragment:
		return "DecorateFragment"
	case PatchAppendNode:
		return "AppendNode"
	case PatchReplaceFragment:
		return "ReplaceFragment"
	case PatchRemoveFragment:
		return "RemoveFragment"
	case PatchReleaseFragment:
		return "ReleaseFragment"
	case PatchNewListener:
		return "NewListener"
	case PatchListen:
		return "Listen"
	case PatchReleaseListener:
		return "ReleaseListener"
	default:
		return "Unknown"
	}
}

// Patch represents a single primitive operation.
type Patch struct {
	Op     PatchOp // Operation type
	Target uint32  // Node or listener the operation applies to
	Arg    uint32  // Second node (child, replacement, tail) where applicable
	Text   string  // Text content or event type
}
