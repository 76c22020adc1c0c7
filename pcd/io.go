package pcd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/pc"
)

// Load decodes a PCD stream and returns its x, y and z fields.
func Load(r io.Reader) (Points, error) {
	pp, err := pc.Unmarshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding pcd")
	}
	if pp.Points == 0 {
		return Points{}, nil
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, errors.Wrap(err, "pcd has no xyz fields")
	}
	return Copy(it), nil
}

func LoadFile(path string) (Points, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pp, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return pp, nil
}

func header(n int, fields ...string) pc.PointCloudHeader {
	h := pc.PointCloudHeader{
		Version:   0.7,
		Fields:    []string{"x", "y", "z"},
		Size:      []int{4, 4, 4},
		Type:      []string{"F", "F", "F"},
		Count:     []int{1, 1, 1},
		Viewpoint: []float32{0, 0, 0, 1, 0, 0, 0},
		Width:     n,
		Height:    1,
	}
	for _, f := range fields {
		h.Fields = append(h.Fields, f)
		h.Size = append(h.Size, 4)
		h.Type = append(h.Type, "U")
		h.Count = append(h.Count, 1)
	}
	return h
}

// Save encodes the points as a PCD stream.
func Save(w io.Writer, ra pc.Vec3RandomAccessor) error {
	return SaveLabeled(w, ra, nil)
}

// SaveLabeled encodes the points with a uint32 "label" field.
// The label field is omitted if labels is nil.
func SaveLabeled(w io.Writer, ra pc.Vec3RandomAccessor, labels []uint32) error {
	n := ra.Len()
	var pp *pc.PointCloud
	if labels == nil {
		pp = &pc.PointCloud{PointCloudHeader: header(n), Points: n}
	} else {
		if len(labels) != n {
			return errors.Errorf("%d labels for %d points", len(labels), n)
		}
		pp = &pc.PointCloud{PointCloudHeader: header(n, "label"), Points: n}
	}
	pp.Data = make([]byte, n*pp.Stride())

	if n > 0 {
		it, err := pp.Vec3Iterator()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			it.SetVec3(ra.Vec3At(i))
			it.Incr()
		}
		if labels != nil {
			itL, err := pp.Uint32Iterator("label")
			if err != nil {
				return err
			}
			for _, l := range labels {
				itL.SetUint32(l)
				itL.Incr()
			}
		}
	}
	return errors.Wrap(pc.Marshal(pp, w), "encoding pcd")
}
