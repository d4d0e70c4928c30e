package stats

import (
	"context"
	"log"
	"time"
)

// Recorder records endpoint hits asynchronously. Recording must never block
// or fail the public read path, so hits go through a buffered channel and a
// worker goroutine; a full buffer drops the hit.
type Recorder struct {
	client Client
	app    string
	hits   chan EndpointHit
}

func NewRecorder(client Client, app string) *Recorder {
	r := &Recorder{
		client: client,
		app:    app,
		hits:   make(chan EndpointHit, 1000),
	}

	go r.run()

	return r
}

// Record enqueues one hit for the given URI and caller IP
func (r *Recorder) Record(uri, ip string) {
	hit := EndpointHit{
		App:       r.app,
		URI:       uri,
		IP:        ip,
		Timestamp: time.Now().Format(DateTimeLayout),
	}

	select {
	case r.hits <- hit:
	default:
		log.Printf("Warning: hit buffer full, dropping hit for %s", uri)
	}
}

func (r *Recorder) run() {
	for hit := range r.hits {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.client.SaveHit(ctx, hit); err != nil {
			log.Printf("Error saving hit for %s: %v", hit.URI, err)
		}
		cancel()
	}
}
