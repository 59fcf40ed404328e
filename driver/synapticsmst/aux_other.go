//go:build !linux

package synapticsmst

import "fmt"

func openAuxDevice(path string) (AuxEndpoint, error) {
	return nil, fmt.Errorf("synapticsmst: aux device access requires linux")
}
