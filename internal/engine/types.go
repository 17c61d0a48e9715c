// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// PortProtocolTCP is the TCP transport protocol for port mappings.
	PortProtocolTCP PortProtocol = "tcp"
	// PortProtocolUDP is the UDP transport protocol for port mappings.
	PortProtocolUDP PortProtocol = "udp"

	// SELinuxLabelNone means no SELinux label is applied to volume mounts.
	SELinuxLabelNone SELinuxLabel = ""
	// SELinuxLabelShared allows sharing the volume between containers.
	SELinuxLabelShared SELinuxLabel = "z"
	// SELinuxLabelPrivate restricts the volume to a single container.
	SELinuxLabelPrivate SELinuxLabel = "Z"
)

var (
	// ErrInvalidImageTag is the sentinel error wrapped by InvalidImageTagError.
	ErrInvalidImageTag = errors.New("invalid image tag")

	// ErrInvalidPortProtocol is the sentinel error wrapped by InvalidPortProtocolError.
	ErrInvalidPortProtocol = errors.New("invalid port protocol")

	// ErrInvalidNetworkPort is the sentinel error wrapped by InvalidNetworkPortError.
	ErrInvalidNetworkPort = errors.New("invalid network port")

	// ErrInvalidSELinuxLabel is the sentinel error wrapped by InvalidSELinuxLabelError.
	ErrInvalidSELinuxLabel = errors.New("invalid SELinux label")

	// ErrInvalidHostPath is the sentinel error wrapped by InvalidHostPathError.
	ErrInvalidHostPath = errors.New("invalid host filesystem path")

	// ErrInvalidContainerPath is the sentinel error wrapped by InvalidContainerPathError.
	ErrInvalidContainerPath = errors.New("invalid container filesystem path")

	// ErrInvalidPortMapping is the sentinel error wrapped by InvalidPortMappingError.
	ErrInvalidPortMapping = errors.New("invalid port mapping")

	// ErrInvalidVolumeMount is the sentinel error wrapped by InvalidVolumeMountError.
	ErrInvalidVolumeMount = errors.New("invalid volume mount")

	// ErrInvalidEnvVar is the sentinel error wrapped by InvalidEnvVarError.
	ErrInvalidEnvVar = errors.New("invalid environment variable")

	// envNamePattern is the identifier pattern environment variable names must match.
	envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// ImageTag identifies an image version (e.g., "latest", "v1.2.0").
	// A valid tag is non-empty and contains no whitespace.
	ImageTag string

	// InvalidImageTagError is returned when an ImageTag is empty or contains whitespace.
	InvalidImageTagError struct {
		Value ImageTag
	}

	// PortProtocol represents a network transport protocol for port mappings.
	// The zero value ("") is valid and means "default to tcp".
	PortProtocol string

	// InvalidPortProtocolError is returned when a PortProtocol is not a recognized protocol.
	InvalidPortProtocolError struct {
		Value PortProtocol
	}

	// NetworkPort represents a TCP/UDP port number. A valid port is greater than zero.
	NetworkPort uint16

	// InvalidNetworkPortError is returned when a NetworkPort value is zero.
	InvalidNetworkPortError struct {
		Value NetworkPort
	}

	// SELinuxLabel represents an SELinux volume labeling option.
	// The zero value ("") means no label is applied.
	SELinuxLabel string

	// InvalidSELinuxLabelError is returned when an SELinuxLabel is not a recognized label.
	InvalidSELinuxLabelError struct {
		Value SELinuxLabel
	}

	// HostPath represents a filesystem path on the host side of a volume mount.
	// A valid path is non-empty and not whitespace-only.
	HostPath string

	// InvalidHostPathError is returned when a HostPath is empty or whitespace-only.
	InvalidHostPathError struct {
		Value HostPath
	}

	// ContainerPath represents a filesystem path inside a container.
	// A valid path is non-empty and not whitespace-only.
	ContainerPath string

	// InvalidContainerPathError is returned when a ContainerPath is empty or whitespace-only.
	InvalidContainerPathError struct {
		Value ContainerPath
	}

	// PortMapping maps a host port to a container port.
	PortMapping struct {
		HostPort      NetworkPort
		ContainerPort NetworkPort
		Protocol      PortProtocol
	}

	// InvalidPortMappingError is returned when a PortMapping has one or more
	// invalid fields. It wraps the field errors for inspection.
	InvalidPortMappingError struct {
		Value     PortMapping
		FieldErrs []error
	}

	// VolumeMount mounts a host path into a container.
	VolumeMount struct {
		HostPath      HostPath
		ContainerPath ContainerPath
		ReadOnly      bool
		SELinux       SELinuxLabel
	}

	// InvalidVolumeMountError is returned when a VolumeMount has one or more
	// invalid fields. It wraps the field errors for inspection.
	InvalidVolumeMountError struct {
		Value     VolumeMount
		FieldErrs []error
	}

	// EnvVar is a NAME=value environment entry passed to a container.
	EnvVar struct {
		Name  string
		Value string
	}

	// InvalidEnvVarError is returned when an EnvVar name does not match the
	// identifier pattern or the entry is missing the '=' separator.
	InvalidEnvVarError struct {
		Value  string
		Reason string
	}
)

// --- ImageTag ---

// String returns the string representation of the ImageTag.
func (t ImageTag) String() string { return string(t) }

// Validate returns an error if the tag is empty or contains whitespace.
func (t ImageTag) Validate() error {
	if t == "" || strings.ContainsAny(string(t), " \t\n") {
		return &InvalidImageTagError{Value: t}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidImageTagError) Error() string {
	return fmt.Sprintf("invalid image tag %q: must be non-empty without whitespace", e.Value)
}

// Unwrap returns ErrInvalidImageTag so callers can use errors.Is.
func (e *InvalidImageTagError) Unwrap() error { return ErrInvalidImageTag }

// --- PortProtocol ---

// String returns the string representation of the PortProtocol.
func (p PortProtocol) String() string { return string(p) }

// Validate returns an error if the PortProtocol is not one of the defined
// protocols. The zero value ("") is valid and means "tcp".
func (p PortProtocol) Validate() error {
	switch p {
	case PortProtocolTCP, PortProtocolUDP, "":
		return nil
	default:
		return &InvalidPortProtocolError{Value: p}
	}
}

// Error implements the error interface.
func (e *InvalidPortProtocolError) Error() string {
	return fmt.Sprintf("invalid port protocol %q (valid: tcp, udp)", e.Value)
}

// Unwrap returns ErrInvalidPortProtocol so callers can use errors.Is.
func (e *InvalidPortProtocolError) Unwrap() error { return ErrInvalidPortProtocol }

// --- NetworkPort ---

// String returns the decimal representation of the NetworkPort.
func (p NetworkPort) String() string { return strconv.Itoa(int(p)) }

// Validate returns an error if the port is zero.
func (p NetworkPort) Validate() error {
	if p == 0 {
		return &InvalidNetworkPortError{Value: p}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidNetworkPortError) Error() string {
	return fmt.Sprintf("invalid network port %d: must be greater than zero", e.Value)
}

// Unwrap returns ErrInvalidNetworkPort so callers can use errors.Is.
func (e *InvalidNetworkPortError) Unwrap() error { return ErrInvalidNetworkPort }

// --- SELinuxLabel ---

// String returns the string representation of the SELinuxLabel.
func (s SELinuxLabel) String() string { return string(s) }

// Validate returns an error if the SELinuxLabel is not one of the defined labels.
func (s SELinuxLabel) Validate() error {
	switch s {
	case SELinuxLabelNone, SELinuxLabelShared, SELinuxLabelPrivate:
		return nil
	default:
		return &InvalidSELinuxLabelError{Value: s}
	}
}

// Error implements the error interface.
func (e *InvalidSELinuxLabelError) Error() string {
	return fmt.Sprintf("invalid SELinux label %q (valid: empty, z, Z)", e.Value)
}

// Unwrap returns ErrInvalidSELinuxLabel so callers can use errors.Is.
func (e *InvalidSELinuxLabelError) Unwrap() error { return ErrInvalidSELinuxLabel }

// --- HostPath / ContainerPath ---

// String returns the string representation of the HostPath.
func (p HostPath) String() string { return string(p) }

// Validate returns an error if the path is empty or whitespace-only.
func (p HostPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidHostPathError{Value: p}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidHostPathError) Error() string {
	return fmt.Sprintf("invalid host filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidHostPath so callers can use errors.Is.
func (e *InvalidHostPathError) Unwrap() error { return ErrInvalidHostPath }

// String returns the string representation of the ContainerPath.
func (p ContainerPath) String() string { return string(p) }

// Validate returns an error if the path is empty or whitespace-only.
func (p ContainerPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidContainerPathError{Value: p}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidContainerPathError) Error() string {
	return fmt.Sprintf("invalid container filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidContainerPath so callers can use errors.Is.
func (e *InvalidContainerPathError) Unwrap() error { return ErrInvalidContainerPath }

// --- PortMapping ---

// Validate returns an error if any field of the PortMapping is invalid.
func (p PortMapping) Validate() error {
	var errs []error
	if err := p.HostPort.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := p.ContainerPort.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := p.Protocol.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidPortMappingError{Value: p, FieldErrs: errs}
	}
	return nil
}

// String returns the mapping in "host:container[/protocol]" format, the form
// the -p flag expects. The protocol suffix is omitted for the tcp default.
func (p PortMapping) String() string {
	s := p.HostPort.String() + ":" + p.ContainerPort.String()
	if p.Protocol != "" && p.Protocol != PortProtocolTCP {
		s += "/" + string(p.Protocol)
	}
	return s
}

// Error implements the error interface.
func (e *InvalidPortMappingError) Error() string {
	return fmt.Sprintf("invalid port mapping %d:%d/%s: %d field error(s)",
		e.Value.HostPort, e.Value.ContainerPort, e.Value.Protocol, len(e.FieldErrs))
}

// Unwrap returns ErrInvalidPortMapping so callers can use errors.Is.
func (e *InvalidPortMappingError) Unwrap() error { return ErrInvalidPortMapping }

// ParsePortMapping parses "hostPort:containerPort[/protocol]" into a
// PortMapping and validates the result.
func ParsePortMapping(s string) (PortMapping, error) {
	mapping := PortMapping{}

	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return mapping, fmt.Errorf("%w: %q must contain a ':' separator", ErrInvalidPortMapping, s)
	}

	hostPort, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return mapping, fmt.Errorf("%w: host port %q: %v", ErrInvalidPortMapping, parts[0], err)
	}
	mapping.HostPort = NetworkPort(hostPort)

	containerParts := strings.SplitN(parts[1], "/", 2)
	containerPort, err := strconv.ParseUint(containerParts[0], 10, 16)
	if err != nil {
		return mapping, fmt.Errorf("%w: container port %q: %v", ErrInvalidPortMapping, containerParts[0], err)
	}
	mapping.ContainerPort = NetworkPort(containerPort)

	if len(containerParts) == 2 {
		mapping.Protocol = PortProtocol(containerParts[1])
	}

	if err := mapping.Validate(); err != nil {
		return mapping, err
	}
	return mapping, nil
}

// --- VolumeMount ---

// Validate returns an error if any field of the VolumeMount is invalid.
func (v VolumeMount) Validate() error {
	var errs []error
	if err := v.HostPath.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := v.ContainerPath.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := v.SELinux.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidVolumeMountError{Value: v, FieldErrs: errs}
	}
	return nil
}

// String returns the mount in "host:container[:opts]" format, the form the
// -v flag expects. Options are comma-joined (ro, z, Z).
func (v VolumeMount) String() string {
	s := string(v.HostPath) + ":" + string(v.ContainerPath)

	var opts []string
	if v.ReadOnly {
		opts = append(opts, "ro")
	}
	if v.SELinux != "" {
		opts = append(opts, string(v.SELinux))
	}
	if len(opts) > 0 {
		s += ":" + strings.Join(opts, ",")
	}
	return s
}

// Error implements the error interface.
func (e *InvalidVolumeMountError) Error() string {
	return fmt.Sprintf("invalid volume mount %s:%s: %d field error(s)",
		e.Value.HostPath, e.Value.ContainerPath, len(e.FieldErrs))
}

// Unwrap returns ErrInvalidVolumeMount so callers can use errors.Is.
func (e *InvalidVolumeMountError) Unwrap() error { return ErrInvalidVolumeMount }

// ParseVolumeMount parses "host:container[:opts]" into a VolumeMount and
// validates the result. Recognized options are ro, z, and Z.
func ParseVolumeMount(s string) (VolumeMount, error) {
	mount := VolumeMount{}

	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return mount, fmt.Errorf("%w: %q must be in host:container form", ErrInvalidVolumeMount, s)
	}
	mount.HostPath = HostPath(parts[0])
	mount.ContainerPath = ContainerPath(parts[1])

	if len(parts) == 3 {
		for opt := range strings.SplitSeq(parts[2], ",") {
			switch opt {
			case "ro":
				mount.ReadOnly = true
			case "z", "Z":
				mount.SELinux = SELinuxLabel(opt)
			}
		}
	}

	if err := mount.Validate(); err != nil {
		return mount, err
	}
	return mount, nil
}

// --- EnvVar ---

// Validate returns an error if the variable name does not match the
// [A-Za-z_][A-Za-z0-9_]* identifier pattern. Values are unrestricted.
func (v EnvVar) Validate() error {
	if !envNamePattern.MatchString(v.Name) {
		return &InvalidEnvVarError{Value: v.Name, Reason: "name must match [A-Za-z_][A-Za-z0-9_]*"}
	}
	return nil
}

// String returns the entry in "NAME=value" format, the form the -e flag expects.
func (v EnvVar) String() string { return v.Name + "=" + v.Value }

// Error implements the error interface.
func (e *InvalidEnvVarError) Error() string {
	return fmt.Sprintf("invalid environment variable %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidEnvVar so callers can use errors.Is.
func (e *InvalidEnvVarError) Unwrap() error { return ErrInvalidEnvVar }

// ParseEnvVar parses "NAME=value" into an EnvVar and validates the result.
func ParseEnvVar(s string) (EnvVar, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return EnvVar{}, &InvalidEnvVarError{Value: s, Reason: "must be in NAME=value form"}
	}
	v := EnvVar{Name: name, Value: value}
	if err := v.Validate(); err != nil {
		return EnvVar{}, err
	}
	return v, nil
}
