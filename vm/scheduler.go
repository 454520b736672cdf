package vm

import (
	"iter"
	"log"
	"slices"

	"github.com/funge98/gofunge/space"
)

// Scheduler owns the live IP set and advances every live IP by
// exactly one instruction per tick, in ascending id order. IPs
// spawned during a tick first execute on the next tick. The machine
// terminates when the live set empties or an IP quits.
type Scheduler struct {
	Verbose bool // Set to enable instruction tracing.

	Space *space.Space // Shared, mutable program space.
	Table *Table       // Instruction registry, read-only while running.

	// Space consumes a tick like any instruction. When false,
	// spaces and ';' sections execute outside of time.
	SpaceCostsTick bool

	Ticks    int // Completed ticks.
	ExitCode int // Exit code once stopped.

	ips     []*IP
	nextId  int
	stopped bool
}

// NewScheduler creates a scheduler with the initial IP at the
// program-space origin, heading east.
func NewScheduler(sp *space.Space, tb *Table, cfg Config) (sc *Scheduler) {
	sc = &Scheduler{
		Space:          sp,
		Table:          tb,
		SpaceCostsTick: cfg.SpaceCostsTick,
	}
	sc.Add(NewIP())

	return
}

// Add assigns the next id to an IP and appends it to the live set.
func (sc *Scheduler) Add(ip *IP) {
	ip.Id = sc.nextId
	sc.nextId++
	sc.ips = append(sc.ips, ip)
}

// Alive returns the number of live IPs.
func (sc *Scheduler) Alive() int {
	return len(sc.ips)
}

// IPs returns an iterator over the live set in execution order.
func (sc *Scheduler) IPs() iter.Seq[*IP] {
	return slices.Values(sc.ips)
}

// Done reports whether the machine has terminated.
func (sc *Scheduler) Done() bool {
	return sc.stopped || len(sc.ips) == 0
}

// Tick advances every currently-live IP by one instruction, collects
// spawns and deaths, and reports whether the machine is done.
func (sc *Scheduler) Tick() (done bool) {
	if sc.Done() {
		return true
	}

	sc.Ticks++

	live := slices.Clone(sc.ips)
	for _, ip := range live {
		next := sc.step(ip)
		for _, child := range ip.children {
			sc.Add(child)
		}
		ip.children = nil
		if next == nil {
			if sc.Verbose {
				log.Printf("vm: tick %d ip %d terminated", sc.Ticks, ip.Id)
			}
			sc.ips = slices.DeleteFunc(sc.ips, func(o *IP) bool { return o == ip })
		}
		if ip.quit {
			sc.stopped = true
			sc.ExitCode = int(ip.exitCode)
			sc.ips = nil
			if sc.Verbose {
				log.Printf("vm: tick %d ip %d quit with code %d", sc.Ticks, ip.Id, sc.ExitCode)
			}
			break
		}
	}

	return sc.Done()
}

// step executes one instruction for one IP, returning the successor
// or nil when the IP terminates.
func (sc *Scheduler) step(ip *IP) *IP {
	c := sc.Space.Get(ip.Location)

	if ip.StringMode {
		switch {
		case c == '"':
			ip.StringMode = false
		case c == ' ':
			// A run of spaces pushes a single space. The slide is
			// bounded so a ray of nothing but spaces (off an
			// unwrapped extent-1 axis) ends with the tick.
			ip.Stacks.Active().Push(c)
			budget := sc.Space.Area() + 1
			for budget > 0 && sc.Space.Get(sc.Space.Step(ip.Location, ip.Delta)) == ' ' {
				ip.Step(sc.Space)
				budget--
			}
		default:
			ip.Stacks.Active().Push(c)
		}
		ip.Step(sc.Space)
		return ip
	}

	if !sc.SpaceCostsTick && (c == ' ' || c == ';') {
		// Slide to the next instruction without consuming the
		// tick. The budget bounds a full torus sweep so a
		// program of nothing but spaces still terminates the
		// scan.
		budget := sc.Space.Area() + 1
		skipping := false
		for budget > 0 && (skipping || c == ' ' || c == ';') {
			if c == ';' {
				skipping = !skipping
			}
			ip.Step(sc.Space)
			c = sc.Space.Get(ip.Location)
			budget--
		}
	}

	if sc.Verbose {
		log.Printf("vm: tick %d ip %d %v %q", sc.Ticks, ip.Id, ip.Location, rune(c))
	}

	next := sc.Table.Dispatch(c, ip, sc.Space)
	if next == nil {
		return nil
	}
	next.Step(sc.Space)

	return next
}
