package interior

// BestFit is the candidate with the smallest MoI residual
type BestFit struct {
	Candidate `yaml:",inline"`
	Residual  float64 `json:"residual" yaml:"residual"`
}

// better orders fits by residual, then by canonical index. Using the index as
// the tie-break makes the reduction independent of the order candidates arrive.
func better(a, b BestFit) bool {
	if a.Residual != b.Residual {
		return a.Residual < b.Residual
	}
	return a.Index < b.Index
}

// Selector is a running minimum over candidates
type Selector struct {
	model MoonModel
	best  BestFit
	found bool
}

// NewSelector creates a selector for the model's target MoI
func NewSelector(model MoonModel) *Selector {
	return &Selector{model: model}
}

// Offer considers c and reports whether it became the new best fit
func (s *Selector) Offer(c Candidate) bool {
	fit := BestFit{Candidate: c, Residual: s.model.Residual(c.MoI)}
	if s.found && !better(fit, s.best) {
		return false
	}
	s.best = fit
	s.found = true
	return true
}

// Merge folds another selector's result into s
func (s *Selector) Merge(other *Selector) {
	if other == nil || !other.found {
		return
	}
	if !s.found || better(other.best, s.best) {
		s.best = other.best
		s.found = true
	}
}

// Best returns the current best fit and whether any candidate was offered
func (s *Selector) Best() (BestFit, bool) {
	return s.best, s.found
}
