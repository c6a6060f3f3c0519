package logging

// Nop discards everything. Used by tests and as a fallback.
type Nop struct{}

func NewNop() Logger { return Nop{} }

func (Nop) Init() {}
func (Nop) Debug(Category, SubCategory, string, map[ExtraKey]any) {}
func (Nop) Debugf(string, ...any) {}
func (Nop) Info(Category, SubCategory, string, map[ExtraKey]any) {}
func (Nop) Infof(string, ...any) {}
func (Nop) Warn(Category, SubCategory, string, map[ExtraKey]any) {}
func (Nop) Warnf(string, ...any) {}
func (Nop) Error(Category, SubCategory, string, map[ExtraKey]any) {}
func (Nop) Errorf(string, ...any) {}
func (Nop) Fatal(Category, SubCategory, string, map[ExtraKey]any) {}
func (Nop) Fatalf(string, ...any) {}
