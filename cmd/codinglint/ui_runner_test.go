package main

import (
	"testing"
	"time"

	"codinglint/internal/driver"
)

func TestDrainUnblocksProducer(t *testing.T) {
	events := make(chan driver.Event, 4)
	sink := driver.ChannelSink{Ch: events}
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		defer close(events)
		// больше, чем вмещает буфер: без чтения отправитель встанет
		for range 1000 {
			sink.OnEvent(driver.Event{File: "a.py", Stage: driver.StageCheck, Status: driver.StatusQueued})
		}
	}()

	drain(events)
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("producer still blocked after drain")
	}
}
