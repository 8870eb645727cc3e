// Package audit journals every status mutation this console issues: who
// acted, on which order, and how the headline status changed. Records are
// batched by a small worker pool and flushed to pluggable sinks (local
// JSONL file, stdout, optionally a Kafka topic).
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	OrderID   int64     `json:"order_id"`
	Action    string    `json:"action"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Note      string    `json:"note,omitempty"`
}

type PoolConfig struct {
	BatchSize   int
	Timeout     time.Duration
	ChannelSize int
}

type Processor interface {
	Process(batch []Record) error
}

// FileProcessor appends batches to a JSONL journal.
type FileProcessor struct {
	Path string
}

func (p *FileProcessor) Process(batch []Record) error {
	file, err := os.OpenFile(p.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit journal: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, rec := range batch {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("append audit record: %w", err)
		}
	}
	return nil
}

// StdoutProcessor prints records, optionally only those whose action or
// note contains Filter.
type StdoutProcessor struct {
	Filter string
}

func (p *StdoutProcessor) Process(batch []Record) error {
	for _, rec := range batch {
		if p.Filter != "" &&
			!strings.Contains(strings.ToLower(rec.Action+" "+rec.Note), strings.ToLower(p.Filter)) {
			continue
		}
		fmt.Printf("AUDIT: %s | %s | order %d | %s | %s -> %s\n",
			rec.Timestamp.Format(time.RFC3339), rec.Actor, rec.OrderID, rec.Action, rec.OldStatus, rec.NewStatus)
	}
	return nil
}

// Publisher is the producer side of a message bus; satisfied by
// kafka.SaramaProducer.
type Publisher interface {
	Publish(topic string, message []byte) error
}

// KafkaProcessor publishes each record as one JSON message.
type KafkaProcessor struct {
	Producer Publisher
	Topic    string
}

func (p *KafkaProcessor) Process(batch []Record) error {
	for _, rec := range batch {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal audit record: %w", err)
		}
		if err := p.Producer.Publish(p.Topic, payload); err != nil {
			return fmt.Errorf("publish audit record: %w", err)
		}
	}
	return nil
}

// WorkerPool batches records and hands batches to every processor. Enqueue
// never blocks a user action: when the channel is full the record is
// dropped.
type WorkerPool struct {
	inputCh    chan Record
	processors []Processor
	batchSize  int
	timeout    time.Duration

	wg sync.WaitGroup
}

func NewWorkerPool(cfg PoolConfig, processors ...Processor) *WorkerPool {
	return &WorkerPool{
		inputCh:    make(chan Record, cfg.ChannelSize),
		processors: processors,
		batchSize:  cfg.BatchSize,
		timeout:    cfg.Timeout,
	}
}

func (p *WorkerPool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *WorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()
	var batch []Record
	timer := time.NewTimer(p.timeout)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			p.drain(batch)
			return
		case rec := <-p.inputCh:
			batch = append(batch, rec)
			if len(batch) >= p.batchSize {
				if !timer.Stop() {
					<-timer.C
				}
				p.processBatch(batch)
				batch = nil
				timer.Reset(p.timeout)
			}
		case <-timer.C:
			if len(batch) > 0 {
				p.processBatch(batch)
				batch = nil
			}
			timer.Reset(p.timeout)
		}
	}
}

// drain flushes the in-progress batch plus whatever is still queued.
func (p *WorkerPool) drain(batch []Record) {
	for {
		select {
		case rec := <-p.inputCh:
			batch = append(batch, rec)
		default:
			if len(batch) > 0 {
				p.processBatch(batch)
			}
			return
		}
	}
}

func (p *WorkerPool) processBatch(batch []Record) {
	for _, proc := range p.processors {
		if err := proc.Process(batch); err != nil {
			log.Printf("Error processing audit batch: %v", err)
		}
	}
}

// Log enqueues a record; drops it when the journal cannot keep up.
func (p *WorkerPool) Log(record Record) {
	select {
	case p.inputCh <- record:
	default:
		log.Println("Audit channel full, dropping record")
	}
}

// Shutdown cancels the workers and waits for the final flush.
func (p *WorkerPool) Shutdown(cancel context.CancelFunc) {
	cancel()
	p.wg.Wait()
}
