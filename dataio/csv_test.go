package dataio

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "a, b, label\n1, 2, 0\n3.5, -4, 1\n"
	opts := DefaultCSVOptions()
	opts.Header = true
	d, err := ReadCSV(strings.NewReader(input), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.Features, []string{"a", "b"}) {
		t.Errorf("unexpected features %v", d.Features)
	}
	if !reflect.DeepEqual(d.X, [][]float64{{1, 2}, {3.5, -4}}) {
		t.Errorf("unexpected rows %v", d.X)
	}
	if !reflect.DeepEqual(d.Y, []float64{0, 1}) {
		t.Errorf("unexpected targets %v", d.Y)
	}
	labels, err := d.Labels()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(labels, []int{0, 1}) {
		t.Errorf("unexpected labels %v", labels)
	}
}

func TestReadCSVTargetColumn(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("7,1,2\n8,3,4\n"), CSVOptions{Target: 0})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.X, [][]float64{{1, 2}, {3, 4}}) || !reflect.DeepEqual(d.Y, []float64{7, 8}) {
		t.Errorf("unexpected dataset %v %v", d.X, d.Y)
	}

	d, err = ReadCSV(strings.NewReader("7,1,2\n8,3,4\n"), CSVOptions{Unlabeled: true})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.X, [][]float64{{7, 1, 2}, {8, 3, 4}}) || d.Y != nil {
		t.Errorf("unexpected dataset %v %v", d.X, d.Y)
	}
}

func TestReadCSVErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"1,2\n3,x\n",
		"1,2\n3\n",
		"5\n6\n",
	} {
		if _, err := ReadCSV(strings.NewReader(input), DefaultCSVOptions()); err == nil {
			t.Errorf("input %q: expected an error", input)
		}
	}
	if _, err := ReadCSV(strings.NewReader("1,2\n"), CSVOptions{Target: 5}); err == nil {
		t.Error("expected an error for an out-of-range target")
	}
}

func TestLabels(t *testing.T) {
	if _, err := Labels([]float64{0, 1.5}); err == nil {
		t.Error("expected an error for a fractional label")
	}
	if _, err := Labels([]float64{-1}); err == nil {
		t.Error("expected an error for a negative label")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []float64{1, 2.5, -3}); err != nil {
		t.Fatal(err)
	}
	if actual := buf.String(); actual != "1\n2.5\n-3\n" {
		t.Errorf("unexpected output %q", actual)
	}
}

func TestWriteCSVRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSVRows(&buf, [][]float64{{0.25, 0.75}, {1, 0}}); err != nil {
		t.Fatal(err)
	}
	if actual := buf.String(); actual != "0.25,0.75\n1,0\n" {
		t.Errorf("unexpected output %q", actual)
	}
}
