// Package writers turns captured blocks into serialized outputs.
//
// Design:
//   • Sinks own all presentation knowledge (.ovpn files, text dump, JSONL).
//   • Scan stays domain-only; Pipeline stays orchestration-only.
//   • JSONL goes through pkg/api (v1) for a stable wire format.
package writers
