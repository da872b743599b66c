package dtree

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	modelMagic   = "DTRE"
	modelVersion = 1

	kindClassifier uint8 = 1
	kindRegressor  uint8 = 2

	tagLeaf   uint8 = 0
	tagBranch uint8 = 1

	// maxSerializedClasses bounds allocations when reading corrupt data.
	maxSerializedClasses = 1 << 20
)

// An Estimator is a fitted or unfitted *Classifier or *Regressor.
type Estimator interface {
	Fitted() bool
	Depth() int
	NumFeatures() int
}

// WriteTree serializes the tree rooted at n in pre-order, using writeLeaf to
// encode leaf values.
func WriteTree[T any](w io.Writer, n Node[T], writeLeaf func(io.Writer, T) error) error {
	var err error
	Walk(n, func(n Node[T], depth int) {
		if err != nil {
			return
		}
		switch n := n.(type) {
		case *Leaf[T]:
			if err = binary.Write(w, binary.LittleEndian, tagLeaf); err == nil {
				err = writeLeaf(w, n.Value)
			}
		case *Branch[T]:
			err = binary.Write(w, binary.LittleEndian, struct {
				Tag       uint8
				Feature   int64
				Threshold float64
			}{tagBranch, int64(n.Feature), n.Threshold})
		}
	})
	if err != nil {
		return errors.Wrap(err, "write tree")
	}
	return nil
}

// ReadTree reads the output written by WriteTree.
//
// Branch features must be in [0, numFeatures).
func ReadTree[T any](r io.Reader, numFeatures int, readLeaf func(io.Reader) (T, error)) (Node[T], error) {
	var root Node[T]
	slots := []*Node[T]{&root}
	for len(slots) > 0 {
		slot := slots[len(slots)-1]
		slots = slots[:len(slots)-1]

		var tag uint8
		if err := binary.Read(r, binary.LittleEndian, &tag); err != nil {
			return nil, errors.Wrap(err, "read tree")
		}
		switch tag {
		case tagLeaf:
			value, err := readLeaf(r)
			if err != nil {
				return nil, errors.Wrap(err, "read tree")
			}
			*slot = &Leaf[T]{Value: value}
		case tagBranch:
			var header struct {
				Feature   int64
				Threshold float64
			}
			if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
				return nil, errors.Wrap(err, "read tree")
			}
			if header.Feature < 0 || header.Feature >= int64(numFeatures) {
				return nil, errors.Errorf("read tree: feature %d out of range [0, %d)",
					header.Feature, numFeatures)
			}
			branch := &Branch[T]{Feature: int(header.Feature), Threshold: header.Threshold}
			*slot = branch
			slots = append(slots, &branch.GreaterEqual, &branch.LessThan)
		default:
			return nil, errors.Errorf("read tree: unknown node tag %d", tag)
		}
	}
	return root, nil
}

type modelHeader struct {
	Magic           [4]byte
	Version         uint8
	Kind            uint8
	MaxDepth        int64
	MinSamplesSplit int64
	Depth           int64
	NumFeatures     int64
}

func writeHeader(w io.Writer, kind uint8, cfg Config, depth, numFeatures int) error {
	h := modelHeader{
		Version:         modelVersion,
		Kind:            kind,
		MaxDepth:        int64(cfg.MaxDepth),
		MinSamplesSplit: int64(cfg.MinSamplesSplit),
		Depth:           int64(depth),
		NumFeatures:     int64(numFeatures),
	}
	copy(h.Magic[:], modelMagic)
	return binary.Write(w, binary.LittleEndian, &h)
}

func readHeader(r io.Reader) (*modelHeader, error) {
	var h modelHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if string(h.Magic[:]) != modelMagic {
		return nil, errors.New("not a decision tree model")
	}
	if h.Version != modelVersion {
		return nil, errors.Errorf("unsupported model version %d", h.Version)
	}
	if h.NumFeatures <= 0 || h.Depth < 0 || h.MaxDepth < 0 || h.MinSamplesSplit < 1 {
		return nil, errors.New("corrupt model header")
	}
	return &h, nil
}

// WriteClassifier serializes a fitted Classifier in a binary format.
func WriteClassifier(w io.Writer, c *Classifier) error {
	if !c.Fitted() {
		return errors.Wrap(ErrNotFitted, "write classifier")
	}
	err := writeHeader(w, kindClassifier, c.est.Config, c.est.depth, c.est.numFeatures)
	if err == nil {
		err = binary.Write(w, binary.LittleEndian, []int64{int64(c.cfgClasses), int64(c.numClasses)})
	}
	if err == nil {
		err = WriteTree(w, c.est.root, func(w io.Writer, p ClassPrediction) error {
			if err := binary.Write(w, binary.LittleEndian, int64(p.Class)); err != nil {
				return err
			}
			return binary.Write(w, binary.LittleEndian, p.Probabilities)
		})
	}
	if err != nil {
		return errors.Wrap(err, "write classifier")
	}
	return nil
}

// ReadClassifier reads the output written by WriteClassifier.
func ReadClassifier(r io.Reader) (*Classifier, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, errors.Wrap(err, "read classifier")
	}
	if h.Kind != kindClassifier {
		return nil, errors.New("read classifier: model is not a classifier")
	}
	return readClassifierBody(r, h)
}

func readClassifierBody(r io.Reader, h *modelHeader) (*Classifier, error) {
	var classes [2]int64
	if err := binary.Read(r, binary.LittleEndian, &classes); err != nil {
		return nil, errors.Wrap(err, "read classifier")
	}
	numClasses := classes[1]
	if numClasses <= 0 || numClasses > maxSerializedClasses || classes[0] < 0 {
		return nil, errors.Errorf("read classifier: invalid class count %d", numClasses)
	}
	root, err := ReadTree(r, int(h.NumFeatures), func(r io.Reader) (ClassPrediction, error) {
		var class int64
		if err := binary.Read(r, binary.LittleEndian, &class); err != nil {
			return ClassPrediction{}, err
		}
		if class < 0 || class >= numClasses {
			return ClassPrediction{}, errors.Errorf("class %d out of range", class)
		}
		probs := make([]float64, numClasses)
		if err := binary.Read(r, binary.LittleEndian, probs); err != nil {
			return ClassPrediction{}, err
		}
		return ClassPrediction{Class: int(class), Probabilities: probs}, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "read classifier")
	}
	return &Classifier{
		est: estimator[int, ClassPrediction]{
			Config:      headerConfig(h),
			root:        root,
			depth:       int(h.Depth),
			numFeatures: int(h.NumFeatures),
		},
		numClasses: int(numClasses),
		cfgClasses: int(classes[0]),
	}, nil
}

// WriteRegressor serializes a fitted Regressor in a binary format.
func WriteRegressor(w io.Writer, reg *Regressor) error {
	if !reg.Fitted() {
		return errors.Wrap(ErrNotFitted, "write regressor")
	}
	err := writeHeader(w, kindRegressor, reg.est.Config, reg.est.depth, reg.est.numFeatures)
	if err == nil {
		err = writeString(w, string(reg.criterion))
	}
	if err == nil {
		err = WriteTree(w, reg.est.root, func(w io.Writer, value float64) error {
			return binary.Write(w, binary.LittleEndian, value)
		})
	}
	if err != nil {
		return errors.Wrap(err, "write regressor")
	}
	return nil
}

// ReadRegressor reads the output written by WriteRegressor.
func ReadRegressor(r io.Reader) (*Regressor, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, errors.Wrap(err, "read regressor")
	}
	if h.Kind != kindRegressor {
		return nil, errors.New("read regressor: model is not a regressor")
	}
	return readRegressorBody(r, h)
}

func readRegressorBody(r io.Reader, h *modelHeader) (*Regressor, error) {
	name, err := readString(r)
	if err != nil {
		return nil, errors.Wrap(err, "read regressor")
	}
	criterion, err := ParseCriterion(name)
	if err != nil {
		return nil, errors.Wrap(err, "read regressor")
	}
	root, err := ReadTree(r, int(h.NumFeatures), func(r io.Reader) (float64, error) {
		var value float64
		err := binary.Read(r, binary.LittleEndian, &value)
		return value, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "read regressor")
	}
	return &Regressor{
		est: estimator[float64, float64]{
			Config:      headerConfig(h),
			root:        root,
			depth:       int(h.Depth),
			numFeatures: int(h.NumFeatures),
		},
		criterion: criterion,
	}, nil
}

// WriteModel serializes a *Classifier or *Regressor.
func WriteModel(w io.Writer, e Estimator) error {
	switch e := e.(type) {
	case *Classifier:
		return WriteClassifier(w, e)
	case *Regressor:
		return WriteRegressor(w, e)
	default:
		return errors.Errorf("write model: unsupported estimator %T", e)
	}
}

// ReadModel reads a model written by WriteClassifier or WriteRegressor and
// returns a *Classifier or *Regressor accordingly.
func ReadModel(r io.Reader) (Estimator, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, errors.Wrap(err, "read model")
	}
	switch h.Kind {
	case kindClassifier:
		c, err := readClassifierBody(r, h)
		if err != nil {
			return nil, err
		}
		return c, nil
	case kindRegressor:
		reg, err := readRegressorBody(r, h)
		if err != nil {
			return nil, err
		}
		return reg, nil
	default:
		return nil, errors.Errorf("read model: unknown kind %d", h.Kind)
	}
}

// Save writes obj to a file at path using a serialization function such as
// WriteModel.
func Save[T any](path string, obj T, f func(io.Writer, T) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save")
	}
	w := bufio.NewWriter(file)
	if err := f(w, obj); err != nil {
		file.Close()
		return errors.Wrap(err, "save")
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return errors.Wrap(err, "save")
	}
	return errors.Wrap(file.Close(), "save")
}

// Load reads an object from the file at path using a deserialization function
// such as ReadModel.
func Load[T any](path string, f func(io.Reader) (T, error)) (T, error) {
	var zero T
	file, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrap(err, "load")
	}
	defer file.Close()
	res, err := f(bufio.NewReader(file))
	if err != nil {
		return zero, errors.Wrap(err, "load")
	}
	return res, nil
}

func headerConfig(h *modelHeader) Config {
	return Config{
		MaxDepth:        int(h.MaxDepth),
		MinSamplesSplit: int(h.MinSamplesSplit),
	}
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var size uint16
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
