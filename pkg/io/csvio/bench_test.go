package csvio

import (
	"io"
	"strings"
	"testing"
)

func BenchmarkReadWrite(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("Name,Age,Citizenship,Residence,Net Worth ($bil),Rank\n")
	for i := 0; i < 5000; i++ {
		sb.WriteString("Someone,61,United States,United States,1.3,701\n")
	}
	body := sb.String()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		r := NewReaderFrom(strings.NewReader(body), ReaderOptions{HasHeader: true})
		schema, err := r.ReadSchema()
		if err != nil {
			b.Fatal(err)
		}
		fr, err := r.ReadAll(schema)
		if err != nil {
			b.Fatal(err)
		}
		if err := Write(io.Discard, fr, WriterOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
