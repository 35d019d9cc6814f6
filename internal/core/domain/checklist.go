package domain

// DocumentTemplate is a service type's required-document structure: a
// mapping from document category name to an ordered list of document
// names. Values are declared as any because the template is administered
// data; entries that are not plain strings are skipped on flattening.
type DocumentTemplate map[string][]any

// Checklist maps a document name to its received state.
type Checklist map[string]bool

// Flatten collapses all category lists into a single checklist with every
// entry initialized to false. Non-string template entries are silently
// skipped. A document name listed under two categories collapses to one
// key; the later category wins, which is indistinguishable at init time
// since every value starts false.
func (t DocumentTemplate) Flatten() Checklist {
	checklist := make(Checklist)
	for _, docs := range t {
		for _, doc := range docs {
			name, ok := doc.(string)
			if !ok {
				continue
			}
			checklist[name] = false
		}
	}
	return checklist
}

// Names returns the checklist keys in no particular order.
func (c Checklist) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}
