package ossim

import "math"

// pSquareQuantile implements the P-Square algorithm for streaming quantile
// estimation: O(1) per-observation updates and O(1) quantile retrieval,
// without storing the observation stream.
//
// Reference: Jain, R. and Chlamtac, I. (1985). "The P^2 Algorithm for
// Dynamic Calculation of Quantiles and Histograms Without Storing
// Observations". Communications of the ACM, 28(10), pp. 1076-1085.
//
// Not safe for concurrent use; the engine is single-threaded so this is not
// an issue here.
type pSquareQuantile struct {
	p  float64
	q  [5]float64
	n  [5]int
	np [5]float64
	dn [5]float64

	count      int
	initBuffer [5]float64
}

func newPSquareQuantile(p float64) *pSquareQuantile {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return &pSquareQuantile{
		p:  p,
		dn: [5]float64{0, p / 2, p, (1 + p) / 2, 1},
	}
}

func (ps *pSquareQuantile) Update(x float64) {
	ps.count++
	if ps.count <= 5 {
		ps.initBuffer[ps.count-1] = x
		if ps.count == 5 {
			ps.initialize()
		}
		return
	}

	var k int
	switch {
	case x < ps.q[0]:
		ps.q[0] = x
		k = 0
	case x >= ps.q[4]:
		ps.q[4] = x
		k = 3
	default:
		for k = 0; k < 4; k++ {
			if ps.q[k] <= x && x < ps.q[k+1] {
				break
			}
		}
	}

	for i := k + 1; i < 5; i++ {
		ps.n[i]++
	}
	for i := 0; i < 5; i++ {
		ps.np[i] += ps.dn[i]
	}

	for i := 1; i < 4; i++ {
		d := ps.np[i] - float64(ps.n[i])
		if (d >= 1 && ps.n[i+1]-ps.n[i] > 1) || (d <= -1 && ps.n[i-1]-ps.n[i] < -1) {
			sign := 1
			if d < 0 {
				sign = -1
			}
			qPrime := ps.parabolic(i, sign)
			if ps.q[i-1] < qPrime && qPrime < ps.q[i+1] {
				ps.q[i] = qPrime
			} else {
				ps.q[i] = ps.linear(i, sign)
			}
			ps.n[i] += sign
		}
	}
}

func (ps *pSquareQuantile) initialize() {
	for i := 1; i < 5; i++ {
		key := ps.initBuffer[i]
		j := i - 1
		for j >= 0 && ps.initBuffer[j] > key {
			ps.initBuffer[j+1] = ps.initBuffer[j]
			j--
		}
		ps.initBuffer[j+1] = key
	}
	for i := 0; i < 5; i++ {
		ps.q[i] = ps.initBuffer[i]
		ps.n[i] = i
	}
	ps.np = [5]float64{0, 2 * ps.p, 4 * ps.p, 2 + 2*ps.p, 4}
}

func (ps *pSquareQuantile) parabolic(i, d int) float64 {
	df := float64(d)
	ni := float64(ps.n[i])
	niPrev := float64(ps.n[i-1])
	niNext := float64(ps.n[i+1])

	term1 := df / (niNext - niPrev)
	term2 := (ni - niPrev + df) * (ps.q[i+1] - ps.q[i]) / (niNext - ni)
	term3 := (niNext - ni - df) * (ps.q[i] - ps.q[i-1]) / (ni - niPrev)
	return ps.q[i] + term1*(term2+term3)
}

func (ps *pSquareQuantile) linear(i, d int) float64 {
	if d == 1 {
		return ps.q[i] + (ps.q[i+1]-ps.q[i])/float64(ps.n[i+1]-ps.n[i])
	}
	return ps.q[i] - (ps.q[i]-ps.q[i-1])/float64(ps.n[i]-ps.n[i-1])
}

func (ps *pSquareQuantile) Quantile() float64 {
	if ps.count == 0 {
		return 0
	}
	if ps.count < 5 {
		sorted := make([]float64, ps.count)
		copy(sorted, ps.initBuffer[:ps.count])
		for i := 1; i < ps.count; i++ {
			key := sorted[i]
			j := i - 1
			for j >= 0 && sorted[j] > key {
				sorted[j+1] = sorted[j]
				j--
			}
			sorted[j+1] = key
		}
		index := int(float64(ps.count-1) * ps.p)
		if index >= ps.count {
			index = ps.count - 1
		}
		return sorted[index]
	}
	return ps.q[2]
}

// schedulerMetrics tracks per-scheduler-kind P-Square latency percentiles
// (waiting-time samples) feeding algorithm_stats().
type schedulerMetrics struct {
	p50, p95, p99 *pSquareQuantile
	sum           float64
	count         int
	max           float64
}

func newSchedulerMetrics() *schedulerMetrics {
	return &schedulerMetrics{
		p50: newPSquareQuantile(0.50),
		p95: newPSquareQuantile(0.95),
		p99: newPSquareQuantile(0.99),
		max: -math.MaxFloat64,
	}
}

func (m *schedulerMetrics) Observe(waitingTicks float64) {
	m.p50.Update(waitingTicks)
	m.p95.Update(waitingTicks)
	m.p99.Update(waitingTicks)
	m.sum += waitingTicks
	m.count++
	if waitingTicks > m.max {
		m.max = waitingTicks
	}
}

// AlgorithmStats is a percentile summary of observed waiting times for one
// scheduling discipline, as surfaced by Engine.AlgorithmStats.
type AlgorithmStats struct {
	Count int
	Mean  float64
	P50   float64
	P95   float64
	P99   float64
	Max   float64
}

func (m *schedulerMetrics) Snapshot() AlgorithmStats {
	if m.count == 0 {
		return AlgorithmStats{}
	}
	return AlgorithmStats{
		Count: m.count,
		Mean:  m.sum / float64(m.count),
		P50:   m.p50.Quantile(),
		P95:   m.p95.Quantile(),
		P99:   m.p99.Quantile(),
		Max:   m.max,
	}
}
