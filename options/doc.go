// Package options implements a typed option-declaration registry: each
// option is a self-describing struct type (name, description, default,
// validity, post-processing) embedding Base, and a Registry collects
// declared types, resolves naming conflicts and refinement-based
// overrides at declaration time, and later resolves each option's
// effective value from specified and default inputs.
//
// A minimal option and registry:
//
//	type NElectrons struct{ options.Base[int] }
//
//	func (n *NElectrons) Name() string              { return "n-electrons,N" }
//	func (n *NElectrons) Description() string       { return "Number of electrons to simulate" }
//	func (n *NElectrons) DefaultValue() (int, bool) { return 1000, true }
//
//	reg := options.New().MustDeclare(options.Of[NElectrons]())
//	n, err := options.GetValue[NElectrons, int](reg)
//
// Declaring a type that embeds an already-declared option replaces that
// option in place while keeping its public name, so a shared base
// configuration can be refined (different default, extra validation,
// post-processing) by whichever component declares last or first; the
// resolved state does not depend on declaration order. Unrelated types
// claiming the same name are rejected when declared.
//
// Parsing raw values out of argv, config files, or the environment is
// delegated to the parse package; this package only consumes a raw
// key-to-value view through Registry.Parse and Registry.Set.
//
// A Registry is not safe for concurrent mutation.
package options
