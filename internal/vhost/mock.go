package vhost

// MockStore is a test double for the Store interface
type MockStore struct {
	root string

	// Function mocks - set these to customize behavior
	AddFunc     func(req AddRequest) (Paths, error)
	LinkFunc    func(host string) (Paths, error)
	ListFunc    func(opts ListOptions) ([]Entry, error)
	PurgeFunc   func(host string) (Paths, error)
	RemoveFunc  func(host string) (Paths, error)
	InspectFunc func(host string) (Status, error)

	// Call tracking - check these to verify interactions
	AddCalls     []AddRequest
	LinkCalls    []string
	ListCalls    []ListOptions
	PurgeCalls   []string
	RemoveCalls  []string
	InspectCalls []string
}

// NewMockStore creates a MockStore whose default behavior succeeds
func NewMockStore(root string) *MockStore {
	return &MockStore{root: root}
}

// Root returns the configured root
func (m *MockStore) Root() string {
	return m.root
}

// Paths composes paths the same way FileStore does
func (m *MockStore) Paths(host string) (Paths, error) {
	return NewFileStore(m.root, DefaultSuffix).Paths(host)
}

// Add records the call and invokes the mock function if set
func (m *MockStore) Add(req AddRequest) (Paths, error) {
	m.AddCalls = append(m.AddCalls, req)
	if m.AddFunc != nil {
		return m.AddFunc(req)
	}
	paths, err := m.Paths(req.Host)
	if err != nil {
		return Paths{}, err
	}
	if req.Output != "" {
		paths.Available = req.Output
	}
	return paths, nil
}

// Link records the call and invokes the mock function if set
func (m *MockStore) Link(host string) (Paths, error) {
	m.LinkCalls = append(m.LinkCalls, host)
	if m.LinkFunc != nil {
		return m.LinkFunc(host)
	}
	return m.Paths(host)
}

// List records the call and invokes the mock function if set
func (m *MockStore) List(opts ListOptions) ([]Entry, error) {
	m.ListCalls = append(m.ListCalls, opts)
	if m.ListFunc != nil {
		return m.ListFunc(opts)
	}
	return []Entry{}, nil
}

// Purge records the call and invokes the mock function if set
func (m *MockStore) Purge(host string) (Paths, error) {
	m.PurgeCalls = append(m.PurgeCalls, host)
	if m.PurgeFunc != nil {
		return m.PurgeFunc(host)
	}
	return m.Paths(host)
}

// Remove records the call and invokes the mock function if set
func (m *MockStore) Remove(host string) (Paths, error) {
	m.RemoveCalls = append(m.RemoveCalls, host)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(host)
	}
	return m.Paths(host)
}

// Inspect records the call and invokes the mock function if set
func (m *MockStore) Inspect(host string) (Status, error) {
	m.InspectCalls = append(m.InspectCalls, host)
	if m.InspectFunc != nil {
		return m.InspectFunc(host)
	}
	paths, err := m.Paths(host)
	if err != nil {
		return Status{}, err
	}
	return Status{Host: host, Paths: paths}, nil
}

// Reset clears all recorded calls
func (m *MockStore) Reset() {
	m.AddCalls = nil
	m.LinkCalls = nil
	m.ListCalls = nil
	m.PurgeCalls = nil
	m.RemoveCalls = nil
	m.InspectCalls = nil
}

// Ensure implementations satisfy Store
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MockStore)(nil)
)
