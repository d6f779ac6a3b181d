package smt

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/xDarkicex/reluplex-smt/orchestrator"
)

// Operation represents a benchmarkable solve with a descriptive name.
type Operation struct {
	// Name is a descriptive name for the operation being benchmarked
	Name string

	// Func runs one solve and returns its result
	Func func() (*orchestrator.Result, error)
}

// OperationResult is one Operation's outcome together with how long it took.
type OperationResult struct {
	Name     string
	Result   *orchestrator.Result
	Err      error
	Duration time.Duration
}

// Benchmark runs multiple solve operations in sequence and keeps each
// one's timing, rather than computing time.Since and discarding it
// immediately.
//
// Example:
//
//	benchmark := NewBenchmark()
//	benchmark.Add("disjoint bound", func() (*orchestrator.Result, error) { return Solve(src) })
//	benchmark.Run()
type Benchmark struct {
	operations []Operation

	// Results stores each operation's outcome and timing after execution
	Results []OperationResult
}

// NewBenchmark creates a new benchmark instance.
func NewBenchmark() *Benchmark {
	return &Benchmark{
		operations: make([]Operation, 0),
		Results:    make([]OperationResult, 0),
	}
}

// Add adds an operation to the benchmark. It runs when Run is called.
func (b *Benchmark) Add(name string, fn func() (*orchestrator.Result, error)) {
	b.operations = append(b.operations, Operation{Name: name, Func: fn})
}

// Run executes every added operation, recording its result and elapsed
// time. Results are available afterward via b.Results.
func (b *Benchmark) Run() {
	b.Results = make([]OperationResult, len(b.operations))

	for i, op := range b.operations {
		start := time.Now()
		result, err := op.Func()
		elapsed := time.Since(start)
		b.Results[i] = OperationResult{
			Name:     op.Name,
			Result:   result,
			Err:      err,
			Duration: elapsed,
		}
	}
}

// Summary renders a one-line-per-operation report, using go-humanize to
// format round counts the way a human would read them.
func (b *Benchmark) Summary() []string {
	lines := make([]string, len(b.Results))
	for i, r := range b.Results {
		switch {
		case r.Err != nil:
			lines[i] = r.Name + ": error: " + r.Err.Error()
		case r.Result.Satisfiable:
			lines[i] = r.Name + ": SAT in " + humanize.Comma(int64(r.Result.Rounds)) + " round(s), " + r.Duration.String()
		default:
			lines[i] = r.Name + ": UNSAT in " + humanize.Comma(int64(r.Result.Rounds)) + " round(s), " + r.Duration.String()
		}
	}
	return lines
}
