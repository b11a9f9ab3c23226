// Command ossim is an interactive console for the simulation engine: a
// ticking background loop plus a line-oriented REPL exposing the mutation
// and query API. The GUI and persistence layers described alongside this
// engine are not this command's job; it is a minimal driver for exercising
// the engine interactively from a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	prompt "github.com/joeycumines/go-prompt"
	pstrings "github.com/joeycumines/go-prompt/strings"

	"github.com/joeycumines/go-longpoll"
	"github.com/joeycumines/go-ossim"
	"github.com/joeycumines/go-ossim/scheduler"
)

func main() {
	var (
		cpus          = flag.Int("cpus", 1, "number of CPUs [1,8]")
		threads       = flag.Int("threads", 1, "threads per CPU [1,8]")
		schedName     = flag.String("scheduler", "FCFS", "scheduling algorithm: FCFS, SJF, SRTF, RR, Priority, PriorityRR")
		quantum       = flag.Int("quantum", 4, "RR/PriorityRR quantum [1,20]")
		memUnits      = flag.Int("mem-units", 1, "number of memory units [1,8]")
		memCapacity   = flag.Int("mem-capacity", 256, "MiB per memory unit [64,4096] step 64")
		pageSize      = flag.Int("page-size", 4, "page size in MiB")
		allocAlg      = flag.String("alloc", "FirstFit", "contiguous fit strategy: FirstFit, BestFit, WorstFit")
		pageAlg       = flag.String("page-alg", "FIFO", "page replacement policy: FIFO, LRU, Optimal")
		agingInterval = flag.Int("aging-interval", scheduler.DefaultAgingInterval, "Priority scheduler aging interval")
		speedMS       = flag.Int("speed", 100, "tick interval in milliseconds, clamped to >= 10")
		seed1         = flag.Uint64("seed1", 1, "engine PRNG seed (first half)")
		seed2         = flag.Uint64("seed2", 2, "engine PRNG seed (second half)")
	)
	flag.Parse()

	if *speedMS < 10 {
		*speedMS = 10
	}

	engine, err := ossim.NewEngine(
		ossim.WithCPUs(*cpus),
		ossim.WithThreadsPerCPU(*threads),
		ossim.WithSchedulingAlgorithm(*schedName),
		ossim.WithQuantum(*quantum),
		ossim.WithMemoryUnits(*memUnits),
		ossim.WithMemoryUnitCapacityMB(*memCapacity),
		ossim.WithPageSizeMB(*pageSize),
		ossim.WithAllocStrategy(*allocAlg),
		ossim.WithPageReplacement(*pageAlg),
		ossim.WithAgingInterval(*agingInterval),
		ossim.WithSeed(*seed1, *seed2),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ossim:", err)
		os.Exit(1)
	}

	c := &console{engine: engine, speed: time.Duration(*speedMS) * time.Millisecond}
	c.start()

	p := prompt.New(
		c.execute,
		prompt.WithPrefix("ossim> "),
		prompt.WithTitle("ossim"),
		prompt.WithCompleter(c.complete),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return breakline && (in == "quit" || in == "exit")
		}),
	)
	p.Run()
	c.stop()
}

// console guards concurrent access to the engine between the background
// ticker goroutine and the REPL's executor callback; the engine itself is
// explicitly not reentrant.
type console struct {
	engine *ossim.Engine
	speed  time.Duration

	mu sync.Mutex

	cancel   context.CancelFunc
	ticks    chan int
	wg       sync.WaitGroup
	loggedAt int
}

func (c *console) start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.ticks = make(chan int, 64)

	c.wg.Add(2)
	go c.tickLoop(ctx)
	go c.logLoop(ctx)
}

func (c *console) stop() {
	c.cancel()
	c.wg.Wait()
}

func (c *console) tickLoop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.speed)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			close(c.ticks)
			return
		case <-ticker.C:
			c.mu.Lock()
			c.engine.Tick()
			clock := c.engine.Clock()
			c.mu.Unlock()
			select {
			case c.ticks <- clock:
			default:
				// drop a tick notification rather than block the simulation
				// loop; the console's log output coalesces anyway.
			}
		}
	}
}

// logLoop drains tick notifications in batches via longpoll.Channel,
// printing any newly appended interrupt-log entries once per batch instead
// of once per tick.
func (c *console) logLoop(ctx context.Context) {
	defer c.wg.Done()
	cfg := &longpoll.ChannelConfig{MaxSize: 32, MinSize: 1, PartialTimeout: 200 * time.Millisecond}
	for {
		var last int
		err := longpoll.Channel(ctx, cfg, c.ticks, func(clock int) error {
			last = clock
			return nil
		})
		if last > 0 {
			c.printNewLogEntries()
		}
		if err != nil {
			return
		}
	}
}

func (c *console) printNewLogEntries() {
	c.mu.Lock()
	entries := c.engine.InterruptLog()
	c.mu.Unlock()
	if len(entries) <= c.loggedAt {
		return
	}
	for _, e := range entries[c.loggedAt:] {
		fmt.Println(e.String())
	}
	c.loggedAt = len(entries)
}

func (c *console) complete(d prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
	suggestions := []prompt.Suggest{
		{Text: "create", Description: "create <size_mb> <duration_ticks> [priority]"},
		{Text: "setsched", Description: "setsched <cpu> <FCFS|SJF|SRTF|RR|Priority|PriorityRR>"},
		{Text: "setthreads", Description: "setthreads <cpu> <n>"},
		{Text: "setalloc", Description: "setalloc <unit> <FirstFit|BestFit|WorstFit>"},
		{Text: "setpage", Description: "setpage <unit> <FIFO|LRU|Optimal>"},
		{Text: "compact", Description: "compact <unit>"},
		{Text: "load", Description: "load <id> <name> <removable:true|false>"},
		{Text: "unload", Description: "unload <id>"},
		{Text: "ps", Description: "list active processes"},
		{Text: "mem", Description: "show memory unit summaries"},
		{Text: "paging", Description: "show paging statistics"},
		{Text: "stats", Description: "show per-algorithm waiting-time stats"},
		{Text: "reset", Description: "reset the engine"},
		{Text: "quit", Description: "exit the console"},
	}
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - pstrings.RuneCountInString(w)
	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

func (c *console) execute(line string) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch fields[0] {
	case "create":
		c.cmdCreate(fields[1:])
	case "setsched":
		c.cmdSetSched(fields[1:])
	case "setthreads":
		c.cmdSetThreads(fields[1:])
	case "setalloc":
		c.cmdSetAlloc(fields[1:])
	case "setpage":
		c.cmdSetPage(fields[1:])
	case "compact":
		c.cmdCompact(fields[1:])
	case "load":
		c.cmdLoad(fields[1:])
	case "unload":
		c.cmdUnload(fields[1:])
	case "ps":
		c.cmdPS()
	case "mem":
		c.cmdMem()
	case "paging":
		c.cmdPaging()
	case "stats":
		c.cmdStats()
	case "reset":
		c.engine.Reset()
		c.loggedAt = 0
		fmt.Println("engine reset")
	case "quit", "exit":
	default:
		fmt.Printf("unknown command %q\n", fields[0])
	}
}

func (c *console) cmdCreate(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: create <size_mb> <duration_ticks> [priority]")
		return
	}
	size, err1 := strconv.Atoi(args[0])
	duration, err2 := strconv.Atoi(args[1])
	priority := 5
	if len(args) >= 3 {
		if v, err := strconv.Atoi(args[2]); err == nil {
			priority = v
		}
	}
	if err1 != nil || err2 != nil {
		fmt.Println("usage: create <size_mb> <duration_ticks> [priority]")
		return
	}
	p, err := c.engine.ManualCreateProcess(size, duration, priority)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("created pid=%d state=%s\n", p.PID, p.State)
}

func (c *console) cmdSetSched(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: setsched <cpu> <name>")
		return
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("usage: setsched <cpu> <name>")
		return
	}
	if err := c.engine.SetCPUScheduler(i, scheduler.Name(args[1])); err != nil {
		fmt.Println("error:", err)
	}
}

func (c *console) cmdSetThreads(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: setthreads <cpu> <n>")
		return
	}
	i, err1 := strconv.Atoi(args[0])
	n, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("usage: setthreads <cpu> <n>")
		return
	}
	if err := c.engine.SetCPUThreads(i, n); err != nil {
		fmt.Println("error:", err)
	}
}

func (c *console) cmdSetAlloc(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: setalloc <unit> <name>")
		return
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("usage: setalloc <unit> <name>")
		return
	}
	if err := c.engine.SetMemoryUnitAllocAlg(i, args[1]); err != nil {
		fmt.Println("error:", err)
	}
}

func (c *console) cmdSetPage(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: setpage <unit> <name>")
		return
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("usage: setpage <unit> <name>")
		return
	}
	if err := c.engine.SetMemoryUnitPageAlg(i, args[1]); err != nil {
		fmt.Println("error:", err)
	}
}

func (c *console) cmdCompact(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: compact <unit>")
		return
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("usage: compact <unit>")
		return
	}
	if err := c.engine.Compact(i); err != nil {
		fmt.Println("error:", err)
	}
}

func (c *console) cmdLoad(args []string) {
	if len(args) != 3 {
		fmt.Println("usage: load <id> <name> <removable:true|false>")
		return
	}
	removable := args[2] == "true"
	c.engine.LoadModule(args[0], args[1], removable)
}

func (c *console) cmdUnload(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: unload <id>")
		return
	}
	if err := c.engine.UnloadModule(args[0]); err != nil {
		fmt.Println("error:", err)
	}
}

func (c *console) cmdPS() {
	for _, p := range c.engine.ActiveProcesses() {
		fmt.Printf("pid=%d name=%s state=%s remaining=%d waiting=%d cpu=%d unit=%d\n",
			p.PID, p.Name, p.State, p.RemainingTicks, p.WaitingTicks, p.CPUID, p.MemoryUnitID)
	}
}

func (c *console) cmdMem() {
	for _, s := range c.engine.MemoryUnitSummaries() {
		fmt.Printf("unit=%d total=%dMiB free=%dMiB frag=%.3f efficiency=%.3f alloc=%s page=%s\n",
			s.ID, s.TotalMB, s.FreeMB, s.FragmentationRatio, s.Efficiency, s.AllocStrategy, s.PageReplacement)
	}
}

func (c *console) cmdPaging() {
	for _, s := range c.engine.PagingStats() {
		fmt.Printf("unit=%d frames=%d replacement=%s fault_rate=%.3f utilization=%.3f\n",
			s.UnitID, s.FrameCount, s.Replacement, s.PageFaultRate, s.MemoryUtilization)
	}
}

func (c *console) cmdStats() {
	for name, stat := range c.engine.AlgorithmStats() {
		fmt.Printf("alg=%s count=%d mean=%.2f p50=%.2f p95=%.2f p99=%.2f max=%.2f\n",
			name, stat.Count, stat.Mean, stat.P50, stat.P95, stat.P99, stat.Max)
	}
}
