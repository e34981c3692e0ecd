package utils

type Metric struct {
	StoreRead    chan float64
	StoreWrite   chan float64
	BackendFetch chan float64
}

func NewMetric() *Metric {
	return &Metric{
		StoreRead:    make(chan float64),
		StoreWrite:   make(chan float64),
		BackendFetch: make(chan float64),
	}
}
