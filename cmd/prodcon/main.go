// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command prodcon runs a producer/consumer workload over a bounded
// blocking queue and reports delivery statistics.
//
// Usage:
//
//	go run ./cmd/prodcon -producers 4 -consumers 4 -items 100000 -cap 1024
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/blq"
	"code.hybscloud.com/iox"
	"github.com/jedib0t/go-pretty/v6/table"

	log "github.com/sirupsen/logrus"
)

type item struct {
	Producer int
	Seq      int
}

func main() {
	producers := flag.Int("producers", 4, "number of producer goroutines")
	consumers := flag.Int("consumers", 4, "number of consumer goroutines")
	items := flag.Int("items", 100_000, "items per producer")
	capacity := flag.Int("cap", 1024, "queue capacity")
	spin := flag.Int("spin", 0, "polling rounds before blocking operations park")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	formatter := new(log.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	log.SetFormatter(formatter)
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	q := blq.New[item](*capacity, blq.WithSpin(*spin))
	total := *producers * *items

	log.Infof("starting workload: %d producers x %d items -> %d consumers (cap=%d spin=%d)",
		*producers, *items, *consumers, *capacity, *spin)

	var produced, consumed, checksum atomix.Int64
	var prodWg, consWg sync.WaitGroup

	start := time.Now()

	for c := range *consumers {
		consWg.Add(1)
		go func(id int) {
			defer consWg.Done()
			for {
				it, err := q.Dequeue()
				if err != nil {
					log.Debugf("consumer %d stopping: %v", id, err)
					return
				}
				consumed.Add(1)
				checksum.Add(int64(it.Seq))
			}
		}(c)
	}

	for p := range *producers {
		prodWg.Add(1)
		go func(id int) {
			defer prodWg.Done()
			for i := range *items {
				it := item{Producer: id, Seq: i}
				if err := q.Enqueue(&it); err != nil {
					log.Errorf("producer %d: enqueue: %v", id, err)
					return
				}
				produced.Add(1)
			}
			log.Debugf("producer %d finished", id)
		}(p)
	}

	prodWg.Wait()

	// Let consumers drain the backlog, then release them
	backoff := iox.Backoff{}
	for q.Len() > 0 {
		backoff.Wait()
	}
	if err := q.Close(); err != nil {
		log.Fatalf("close: %v", err)
	}
	consWg.Wait()

	elapsed := time.Since(start)

	if consumed.Load() != int64(total) {
		log.Errorf("delivery mismatch: consumed %d of %d", consumed.Load(), total)
	}
	wantChecksum := int64(*producers) * int64(*items) * int64(*items-1) / 2
	if checksum.Load() != wantChecksum {
		log.Errorf("checksum mismatch: got %d, want %d", checksum.Load(), wantChecksum)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Producers", *producers})
	t.AppendRow(table.Row{"Consumers", *consumers})
	t.AppendRow(table.Row{"Capacity", *capacity})
	t.AppendRow(table.Row{"Produced", produced.Load()})
	t.AppendRow(table.Row{"Consumed", consumed.Load()})
	t.AppendRow(table.Row{"Elapsed", elapsed.Round(time.Millisecond)})
	t.AppendRow(table.Row{"Throughput", fmt.Sprintf("%.2f M items/sec",
		float64(consumed.Load())/elapsed.Seconds()/1e6)})
	t.AppendSeparator()
	t.Render()
}
