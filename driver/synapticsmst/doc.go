// Package synapticsmst drives Synaptics VMM-series DisplayPort MST hubs
// over the DPCD/AUX character-device interface exposed by the Linux DRM
// driver (/dev/drm_dp_auxN). It implements the vendor Remote Control (RC)
// protocol tunneled through DPCD registers, cascade addressing for hubs
// chained behind other hubs, and the firmware image validation and flash
// update pipeline used to reflash a hub in the field.
package synapticsmst
