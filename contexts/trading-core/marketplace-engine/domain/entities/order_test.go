package entities

import "testing"

func TestCanTransitionChain(t *testing.T) {
	if !CanTransition(StatusPending, StatusShipped) {
		t.Fatal("pending -> shipped must be allowed")
	}
	if !CanTransition(StatusShipped, StatusReceived) {
		t.Fatal("shipped -> received must be allowed")
	}
}

func TestCanTransitionRejectsEverythingElse(t *testing.T) {
	statuses := []Status{StatusPending, StatusShipped, StatusReceived, StatusCancelled}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusShipped}:  true,
		{StatusShipped, StatusReceived}: true,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			got := CanTransition(from, to)
			want := allowed[[2]Status{from, to}]
			if got != want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCancelledHasNoInboundTransition(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusShipped, StatusReceived, StatusCancelled} {
		if CanTransition(from, StatusCancelled) {
			t.Fatalf("%s -> cancelled must not be reachable", from)
		}
	}
}
