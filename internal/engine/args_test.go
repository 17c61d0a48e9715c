// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocker_BuildArgs(t *testing.T) {
	t.Parallel()
	d := NewDocker(WithBinaryPath("/usr/bin/docker"))

	tests := []struct {
		name string
		opts BuildOptions
		want []string
	}{
		{
			name: "minimal build defaults context and load",
			opts: BuildOptions{Reference: "myapp:latest"},
			want: []string{"buildx", "build", "-t", "myapp:latest", "--load", "--progress=plain", "."},
		},
		{
			name: "dockerfile and explicit context",
			opts: BuildOptions{
				Reference:  "myapp:v1",
				Dockerfile: "Dockerfile.prod",
				ContextDir: "services/api",
			},
			want: []string{"buildx", "build", "-t", "myapp:v1", "-f", "Dockerfile.prod", "--load", "--progress=plain", "services/api"},
		},
		{
			name: "platform cache and no-cache",
			opts: BuildOptions{
				Reference: "myapp:v1",
				Platform:  "linux/amd64,linux/arm64",
				CacheTo:   "type=registry,ref=reg.example.com/cache",
				CacheFrom: "type=registry,ref=reg.example.com/cache",
				NoCache:   true,
				Pull:      true,
			},
			want: []string{
				"buildx", "build", "-t", "myapp:v1",
				"--platform", "linux/amd64,linux/arm64",
				"--cache-to", "type=registry,ref=reg.example.com/cache",
				"--cache-from", "type=registry,ref=reg.example.com/cache",
				"--no-cache", "--pull", "--load", "--progress=plain", ".",
			},
		},
		{
			name: "push replaces load",
			opts: BuildOptions{Reference: "reg.example.com/myapp:v1", Push: true},
			want: []string{"buildx", "build", "-t", "reg.example.com/myapp:v1", "--push", "--progress=plain", "."},
		},
		{
			name: "build args in input order",
			opts: BuildOptions{
				Reference: "myapp:latest",
				BuildArgs: []EnvVar{{Name: "VERSION", Value: "1.2"}, {Name: "COMMIT", Value: "abc"}},
			},
			want: []string{
				"buildx", "build", "-t", "myapp:latest",
				"--build-arg", "VERSION=1.2", "--build-arg", "COMMIT=abc",
				"--load", "--progress=plain", ".",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			inv := d.BuildArgs(tt.opts)
			if diff := cmp.Diff(tt.want, inv.Args); diff != "" {
				t.Errorf("BuildArgs mismatch (-want +got):\n%s", diff)
			}
			// Context dir is always the last positional argument.
			if got := inv.Args[len(inv.Args)-1]; tt.opts.ContextDir != "" && got != tt.opts.ContextDir {
				t.Errorf("last arg = %q, want context dir %q", got, tt.opts.ContextDir)
			}
		})
	}
}

func TestDocker_BuildArgs_ForcesBuildKit(t *testing.T) {
	t.Parallel()
	d := NewDocker(WithBinaryPath("/usr/bin/docker"))

	inv := d.BuildArgs(BuildOptions{Reference: "myapp:latest"})
	want := []EnvVar{{Name: "DOCKER_BUILDKIT", Value: "1"}}
	if diff := cmp.Diff(want, inv.Env); diff != "" {
		t.Errorf("BuildArgs env mismatch (-want +got):\n%s", diff)
	}
}

func TestDocker_RunArgs(t *testing.T) {
	t.Parallel()
	d := NewDocker(WithBinaryPath("/usr/bin/docker"))

	tests := []struct {
		name string
		opts RunOptions
		want []string
	}{
		{
			name: "minimal run",
			opts: RunOptions{Reference: "myapp:latest"},
			want: []string{"run", "myapp:latest"},
		},
		{
			name: "everything in input order",
			opts: RunOptions{
				Reference: "myapp:latest",
				Ports: []PortMapping{
					{HostPort: 8080, ContainerPort: 80},
					{HostPort: 443, ContainerPort: 443},
				},
				Volumes: []VolumeMount{{HostPath: "./data", ContainerPath: "/data"}},
				Env:     []EnvVar{{Name: "X", Value: "1"}},
				Detach:  true,
				Remove:  true,
				Name:    "app",
			},
			want: []string{
				"run",
				"-p", "8080:80", "-p", "443:443",
				"-v", "./data:/data",
				"-e", "X=1",
				"-d", "--rm", "--name", "app",
				"myapp:latest",
			},
		},
		{
			name: "udp port keeps protocol suffix",
			opts: RunOptions{
				Reference: "myapp:latest",
				Ports:     []PortMapping{{HostPort: 53, ContainerPort: 53, Protocol: PortProtocolUDP}},
			},
			want: []string{"run", "-p", "53:53/udp", "myapp:latest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			inv := d.RunArgs(tt.opts)
			if diff := cmp.Diff(tt.want, inv.Args); diff != "" {
				t.Errorf("RunArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDocker_RunArgs_Deterministic(t *testing.T) {
	t.Parallel()
	d := NewDocker(WithBinaryPath("/usr/bin/docker"))

	opts := RunOptions{
		Reference: "myapp:latest",
		Ports:     []PortMapping{{HostPort: 8080, ContainerPort: 80}, {HostPort: 443, ContainerPort: 443}},
		Volumes:   []VolumeMount{{HostPath: "./data", ContainerPath: "/data"}},
		Env:       []EnvVar{{Name: "X", Value: "1"}},
		Detach:    true,
		Name:      "app",
	}

	first := d.RunArgs(opts)
	for range 20 {
		again := d.RunArgs(opts)
		if diff := cmp.Diff(first.Args, again.Args); diff != "" {
			t.Fatalf("RunArgs not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestDocker_LoginArgs_PasswordNeverInArgv(t *testing.T) {
	t.Parallel()
	d := NewDocker(WithBinaryPath("/usr/bin/docker"))

	opts := LoginOptions{
		Registry: "registry.example.com",
		Username: "ci-bot",
		Password: "s3cr3t-token",
	}
	inv := d.LoginArgs(opts)

	want := []string{"login", "registry.example.com", "-u", "ci-bot", "--password-stdin"}
	if diff := cmp.Diff(want, inv.Args); diff != "" {
		t.Errorf("LoginArgs mismatch (-want +got):\n%s", diff)
	}

	for _, arg := range inv.Args {
		if strings.Contains(arg, opts.Password) {
			t.Fatalf("password leaked into argv: %v", inv.Args)
		}
	}
	if !strings.Contains(inv.Stdin, opts.Password) {
		t.Error("password missing from the stdin payload")
	}
}

func TestDocker_TagPushPullArgs(t *testing.T) {
	t.Parallel()
	d := NewDocker(WithBinaryPath("/usr/bin/docker"))

	push := PushOptions{SourceRef: "myapp:v1", TargetRef: "reg.example.com/myapp:v1"}
	if diff := cmp.Diff([]string{"tag", "myapp:v1", "reg.example.com/myapp:v1"}, d.TagArgs(push).Args); diff != "" {
		t.Errorf("TagArgs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"push", "reg.example.com/myapp:v1"}, d.PushArgs(push).Args); diff != "" {
		t.Errorf("PushArgs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pull", "reg.example.com/myapp:v2"}, d.PullArgs(PullOptions{Reference: "reg.example.com/myapp:v2"}).Args); diff != "" {
		t.Errorf("PullArgs mismatch (-want +got):\n%s", diff)
	}
}

func TestDocker_CleanArgs(t *testing.T) {
	t.Parallel()
	d := NewDocker(WithBinaryPath("/usr/bin/docker"))

	tests := []struct {
		name  string
		scope CleanScope
		want  [][]string
	}{
		{
			name:  "containers only",
			scope: CleanScope{Containers: true},
			want:  [][]string{{"container", "prune", "-f"}},
		},
		{
			name:  "images and volumes",
			scope: CleanScope{Images: true, Volumes: true},
			want:  [][]string{{"image", "prune", "-af"}, {"volume", "prune", "-f"}},
		},
		{
			name:  "all covers every class",
			scope: CleanScopeAll(),
			want: [][]string{
				{"container", "prune", "-f"},
				{"image", "prune", "-af"},
				{"volume", "prune", "-f"},
				{"builder", "prune", "-af"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got [][]string
			for _, inv := range d.CleanArgs(tt.scope) {
				got = append(got, inv.Args)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CleanArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDocker_CleanArgs_AllEqualsEveryFlag(t *testing.T) {
	t.Parallel()
	d := NewDocker(WithBinaryPath("/usr/bin/docker"))

	all := d.CleanArgs(CleanScopeAll())
	explicit := d.CleanArgs(CleanScope{Containers: true, Images: true, Volumes: true, BuildCache: true})

	if diff := cmp.Diff(all, explicit); diff != "" {
		t.Errorf("--all and explicit flags diverge (-all +explicit):\n%s", diff)
	}
}
