package dataio

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

func TestReadWriteNpyMatrix(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5, 6}}
	var buf bytes.Buffer
	if err := WriteNpyMatrix(&buf, rows); err != nil {
		t.Fatal(err)
	}
	m, err := ReadNpyMatrix(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if actual := Rows(m); !reflect.DeepEqual(actual, rows) {
		t.Fatalf("expected %v but got %v", rows, actual)
	}
}

func TestReadWriteNpyVector(t *testing.T) {
	values := []float64{0.5, -1, 3}
	var buf bytes.Buffer
	if err := WriteNpyVector(&buf, values); err != nil {
		t.Fatal(err)
	}
	actual, err := ReadNpyVector(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(actual, values) {
		t.Fatalf("expected %v but got %v", values, actual)
	}

	buf.Reset()
	if err := npyio.Write(&buf, mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadNpyVector(&buf); err == nil {
		t.Error("expected an error for a matrix")
	}
}

func TestReadNpyDataset(t *testing.T) {
	dir := t.TempDir()
	featurePath := filepath.Join(dir, "x.npy")
	targetPath := filepath.Join(dir, "y.npy")
	writeFile(t, featurePath, func(buf *bytes.Buffer) error {
		return WriteNpyMatrix(buf, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	})
	writeFile(t, targetPath, func(buf *bytes.Buffer) error {
		return WriteNpyVector(buf, []float64{0, 1, 1})
	})

	d, err := ReadNpyDataset(featurePath, targetPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.X) != 3 || len(d.X[0]) != 2 || !reflect.DeepEqual(d.Y, []float64{0, 1, 1}) {
		t.Errorf("unexpected dataset %v %v", d.X, d.Y)
	}

	d, err = ReadNpyDataset(featurePath, "")
	if err != nil {
		t.Fatal(err)
	}
	if d.Y != nil {
		t.Errorf("expected no targets but got %v", d.Y)
	}

	writeFile(t, targetPath, func(buf *bytes.Buffer) error {
		return WriteNpyVector(buf, []float64{0, 1})
	})
	if _, err := ReadNpyDataset(featurePath, targetPath); err == nil {
		t.Error("expected an error for mismatched lengths")
	}
}

func writeFile(t *testing.T, path string, f func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := f(&buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestReadNpyEmptyMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.npy")
	writeFile(t, path, func(buf *bytes.Buffer) error {
		writeNpyHeader(buf, "{'descr': '<f8', 'fortran_order': False, 'shape': (0, 3), }")
		return nil
	})
	if _, err := ReadNpyDataset(path, ""); err == nil {
		t.Error("expected an error for a matrix with no rows")
	}

	var buf bytes.Buffer
	writeNpyHeader(&buf, "{'descr': '<f8', 'fortran_order': False, 'shape': (2, 0), }")
	if _, err := ReadNpyMatrix(&buf); err == nil {
		t.Error("expected an error for a matrix with no columns")
	}
}

// writeNpyHeader writes a version 1.0 NumPy header with no data after it.
func writeNpyHeader(buf *bytes.Buffer, dict string) {
	header := dict
	for (10+len(header)+1)%64 != 0 {
		header += " "
	}
	header += "\n"
	buf.WriteString("\x93NUMPY\x01\x00")
	buf.WriteByte(byte(len(header)))
	buf.WriteByte(byte(len(header) >> 8))
	buf.WriteString(header)
}
