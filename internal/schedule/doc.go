// Package schedule drives a tracker to completion.
//
// Two schedulers are provided:
//
//   - [Sequence] runs one step at a time, always choosing the smallest
//     doable step, and yields the resulting order.
//   - [Team] simulates a fixed pool of workers on a discrete clock. Every
//     step costs a base delay plus the duration reported by a
//     [step.DurationPolicy], and idle workers pick up the smallest doable
//     steps first.
//
// Both detect inputs that can never complete (a dependency cycle, or a step
// waiting on itself) and report them as an *errors.ScheduleError wrapping
// errors.ErrCyclicDependency instead of looping forever.
//
// Usage:
//
//	set, _ := precedence.ReadFile("input.txt")
//
//	order, err := schedule.NewSequence(tracker.New(set)).Order()
//
//	team := schedule.NewTeam(schedule.WithWorkers(2), schedule.WithBaseDelay(0))
//	result, err := team.Run(ctx, tracker.New(set))
//	fmt.Println(result.Ticks)
//
// Neither scheduler is safe for concurrent use. Run independent schedulers
// over independent trackers to solve several inputs in parallel.
package schedule
