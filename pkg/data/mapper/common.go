package mapper

import "github.com/wavegrid/searev/pkg/searev"

// BinarySample is the packed on-disk record of one trace row. The
// layout is five consecutive float64 fields with no padding, so a
// record can be reinterpreted directly from the mapped file.
type BinarySample struct {
	Time      float64
	Elevation float64
	Angle     float64
	Speed     float64
	Torque    float64
}

// ReadDataset drains a sample reader into a Dataset, regenerating the
// time vector on the dt grid.
func ReadDataset(r *Reader[BinarySample], dt float64) (*searev.Dataset, error) {
	count, err := r.EntryCount()
	if err != nil {
		return nil, err
	}

	timeCol := make([]float64, count)
	elev := make([]float64, count)
	angle := make([]float64, count)
	speed := make([]float64, count)
	torque := make([]float64, count)

	var sample BinarySample
	for i := int64(0); i < count; i++ {
		if err := r.Read(i, &sample); err != nil {
			return nil, err
		}
		timeCol[i] = sample.Time
		elev[i] = sample.Elevation
		angle[i] = sample.Angle
		speed[i] = sample.Speed
		torque[i] = sample.Torque
	}
	return searev.NewDataset(timeCol, elev, angle, speed, torque, dt)
}
