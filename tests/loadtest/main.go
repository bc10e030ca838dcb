package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8090"
	numWorkers   = 20
	testDuration = 10 * time.Second
	daysSpread   = 60
)

var eventTypes = []string{"exam", "assignment", "study", "other"}
var moods = []string{"excellent", "good", "okay", "stressed", "sad"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== StudyTrack Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Days: %d\n\n", numWorkers, testDuration, daysSpread)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding sessions and events ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.7 {
			return doPostSession(rng)
		}
		return doPostEvent(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (30% writes, 70% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doPostSession(rng)
		case r < 0.25:
			return doPostEvent(rng)
		case r < 0.30:
			return doPostMood(rng)
		case r < 0.60:
			return doGet("/stats")
		case r < 0.75:
			return doGet("/stats/weekly")
		case r < 0.90:
			return doGet(fmt.Sprintf("/events?month=%s", time.Now().Format("2006-01")))
		default:
			return doGet("/mood/summary?period=month")
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doPostSession(rng)
		case r < 0.60:
			return doGet("/stats")
		case r < 0.80:
			return doGet("/stats/weekly")
		case r < 0.95:
			return doGet("/notifications")
		default:
			return doGet("/events.ics")
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func randomDay(rng *rand.Rand) time.Time {
	return time.Now().AddDate(0, 0, -rng.Intn(daysSpread))
}

func doPostSession(rng *rand.Rand) result {
	end := randomDay(rng)
	start := end.Add(-time.Duration(rng.Intn(7200)+60) * time.Second)
	return doPost("/sessions", map[string]any{
		"startTime": start.Format(time.RFC3339),
		"endTime":   end.Format(time.RFC3339),
	})
}

func doPostEvent(rng *rand.Rand) result {
	day := time.Now().AddDate(0, 0, rng.Intn(daysSpread)-daysSpread/2)
	body := map[string]any{
		"title": fmt.Sprintf("Load event %d", rng.Intn(100000)),
		"date":  day.Format("2006-01-02"),
		"type":  eventTypes[rng.Intn(len(eventTypes))],
	}
	if rng.Float64() < 0.7 {
		body["time"] = fmt.Sprintf("%02d:%02d", rng.Intn(24), rng.Intn(60))
	}
	return doPost("/events", body)
}

func doPostMood(rng *rand.Rand) result {
	return doPost("/mood", map[string]any{
		"date": randomDay(rng).Format("2006-01-02"),
		"mood": moods[rng.Intn(len(moods))],
	})
}

func doPost(path string, body map[string]any) result {
	endpoint := "POST " + path
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusCreated}
}

func doGet(path string) result {
	endpoint := "GET " + strings.SplitN(path, "?", 2)[0]
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
