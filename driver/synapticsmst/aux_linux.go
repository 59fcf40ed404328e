//go:build linux

package synapticsmst

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// linuxAux binds AuxEndpoint to a real /dev/drm_dp_auxN character device.
type linuxAux struct {
	fd int
}

func openAuxDevice(path string) (AuxEndpoint, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		switch err {
		case unix.ENOENT:
			return nil, fmt.Errorf("synapticsmst: %s: no such device", path)
		case unix.EACCES:
			return nil, ErrPermissionDenied
		default:
			return nil, fmt.Errorf("synapticsmst: open %s: %w", path, err)
		}
	}
	dev := &linuxAux{fd: fd}
	ok, err := probeSynapticsOUI(dev.ReadAt)
	if err != nil {
		dev.Close()
		return nil, err
	}
	if !ok {
		dev.Close()
		return nil, ErrNotSynaptics
	}
	return dev, nil
}

func (d *linuxAux) ReadAt(offset uint32, buf []byte) error {
	pos, err := unix.Seek(d.fd, int64(offset), unix.SEEK_SET)
	if err != nil || pos != int64(offset) {
		return ErrSeekFail
	}
	n, err := unix.Read(d.fd, buf)
	if err != nil || n != len(buf) {
		return ErrAccessFail
	}
	return nil
}

func (d *linuxAux) WriteAt(offset uint32, buf []byte) error {
	pos, err := unix.Seek(d.fd, int64(offset), unix.SEEK_SET)
	if err != nil || pos != int64(offset) {
		return ErrSeekFail
	}
	n, err := unix.Write(d.fd, buf)
	if err != nil || n != len(buf) {
		return ErrAccessFail
	}
	return nil
}

func (d *linuxAux) Close() error {
	if d.fd < 0 {
		return nil
	}
	fd := d.fd
	d.fd = -1
	return unix.Close(fd)
}
