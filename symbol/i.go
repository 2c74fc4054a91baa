package symbol

// Table interns symbols by name. Symbols with an empty name are placeholders: every
// registration creates a new slot and they are never resolved by name.
type Table interface {
	Register(sym Symbol) (idx int, err error)
	Resolve(name string) (idx int, ok bool)
	Get(idx int) (sym Symbol, ok bool)
	Evaluate(idx int, t float64) float64
	Len() int
}
