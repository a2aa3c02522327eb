package embedding

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func l2norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestLocalEmbedIsDeterministic(t *testing.T) {
	m := NewLocalModel()

	first, err := m.Embed(context.Background(), "the capital of France")
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Embed(context.Background(), "the capital of France")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical texts embedded to different vectors")
	}
}

func TestLocalEmbedIsNormalized(t *testing.T) {
	m := NewLocalModel()

	for _, text := range []string{"one", "a few more words here", "repeated repeated repeated"} {
		vec, err := m.Embed(context.Background(), text)
		if err != nil {
			t.Fatal(err)
		}
		if len(vec) != localDim {
			t.Fatalf("text %q: dim = %d, expected %d", text, len(vec), localDim)
		}
		if norm := l2norm(vec); math.Abs(norm-1) > 1e-5 {
			t.Errorf("text %q: norm = %f, expected 1", text, norm)
		}
	}
}

func TestLocalEmbedEmptyText(t *testing.T) {
	m := NewLocalModel()

	vec, err := m.Embed(context.Background(), "   ")
	if err != nil {
		t.Fatal(err)
	}
	if norm := l2norm(vec); math.Abs(norm-1) > 1e-5 {
		t.Errorf("empty text: norm = %f, expected a unit vector", norm)
	}
}

func TestLocalEmbedCaseInsensitive(t *testing.T) {
	m := NewLocalModel()

	lower, _ := m.Embed(context.Background(), "paris france")
	upper, _ := m.Embed(context.Background(), "PARIS France")
	if !reflect.DeepEqual(lower, upper) {
		t.Error("case variants embedded to different vectors")
	}
}

func TestLocalEmbedDistinguishesTexts(t *testing.T) {
	m := NewLocalModel()

	a, _ := m.Embed(context.Background(), "the capital of France is Paris")
	b, _ := m.Embed(context.Background(), "bananas are rich in potassium")
	if reflect.DeepEqual(a, b) {
		t.Error("unrelated texts embedded to the same vector")
	}
}
