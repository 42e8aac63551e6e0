// Package shape defines the closed description of a value type's structure
// that drives sampling: Primitive, Optional, Sequence, Indirect, Record and
// Union (with NoPayload, PositionalFields or NamedFields variants). The
// Shape interface is sealed, so the sampler can switch over every case and
// unsupported types cannot be expressed at all.
//
// Go types publish their structure by implementing Provider; schema
// documents are turned into shapes by the discovery adapters.
package shape
