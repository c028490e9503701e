package mock

import "github.com/mskalski/grader"

// Compile-time interface verification.
var (
	_ grader.DatasetLoader = (*DatasetLoader)(nil)
	_ grader.ResultStore   = (*ResultStore)(nil)
)

// DatasetLoader is a mock implementation of grader.DatasetLoader.
type DatasetLoader struct {
	LoadFn func(path string) ([]grader.TestCase, error)
}

func (l *DatasetLoader) Load(path string) ([]grader.TestCase, error) {
	return l.LoadFn(path)
}

// ResultStore is a mock implementation of grader.ResultStore.
type ResultStore struct {
	LoadFn func(path string) ([]grader.CaseResult, error)
	SaveFn func(path string, results []grader.CaseResult) error
}

func (s *ResultStore) Load(path string) ([]grader.CaseResult, error) {
	return s.LoadFn(path)
}

func (s *ResultStore) Save(path string, results []grader.CaseResult) error {
	return s.SaveFn(path, results)
}
