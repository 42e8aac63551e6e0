package config

// Merge overlays one tree onto another. Objects merge key by key, keeping the
// base order and appending new keys; any other overlay value replaces the
// base value, arrays included.
func Merge(base, overlay Node) Node {
	if base.kind != KindObject || overlay.kind != KindObject {
		return overlay
	}
	members := base.Members()
	for _, member := range overlay.Members() {
		if current, ok := base.fields[member.Key]; ok {
			member.Value = Merge(current, member.Value)
		}
		members = append(members, member)
	}
	return Object(members...)
}
