package matcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/perbu/advomatch/pkg/advocate"
	"github.com/perbu/advomatch/pkg/embedder"
)

// fakeEmbedder returns fixed vectors per text and counts calls.
type fakeEmbedder struct {
	vectors map[string][]float32
	fail    map[string]error
	gate    chan struct{} // when set, Embed blocks until it is closed
	calls   atomic.Int32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if err := f.fail[text]; err != nil {
		return nil, err
	}
	v, ok := f.vectors[text]
	if !ok {
		return nil, &embedder.EmbeddingError{Kind: embedder.KindMalformed, Model: "fake", Err: fmt.Errorf("no vector for %q", text)}
	}
	return slices.Clone(v), nil
}

func (f *fakeEmbedder) Dimension() int    { return 2 }
func (f *fakeEmbedder) ModelInfo() string { return "fake" }

type stubSource struct {
	advocates []advocate.Advocate
	calls     atomic.Int32
}

func (s *stubSource) ListAdvocates(context.Context) ([]advocate.Advocate, error) {
	s.calls.Add(1)
	return s.advocates, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAdvocate(id int64) advocate.Advocate {
	return advocate.Advocate{
		ID:                id,
		FirstName:         fmt.Sprintf("First%d", id),
		LastName:          "Last",
		City:              "Denver",
		Degree:            "MD",
		Specialties:       []string{"Anxiety"},
		YearsOfExperience: int(id),
		PhoneNumber:       "5550000000",
	}
}

// fixture builds a source and an embedder where advocate i gets vectors[i].
// The query text "q" embeds to query.
func fixture(query []float32, vectors ...[]float32) (*stubSource, *fakeEmbedder) {
	src := &stubSource{}
	emb := &fakeEmbedder{vectors: map[string][]float32{"q": query}, fail: map[string]error{}}
	for n, v := range vectors {
		a := testAdvocate(int64(n + 1))
		src.advocates = append(src.advocates, a)
		emb.vectors[a.Description()] = v
	}
	return src, emb
}

func ids(advocates []advocate.Advocate) []int64 {
	out := make([]int64, len(advocates))
	for n, a := range advocates {
		out[n] = a.ID
	}
	return out
}

var errProvider = &embedder.EmbeddingError{Kind: embedder.KindTransport, Model: "fake", Err: errors.New("provider down")}
