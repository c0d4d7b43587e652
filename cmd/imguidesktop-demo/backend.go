package main

import (
	"fmt"

	imguidesktop "github.com/PazerOP/imgui-desktop"
	"github.com/PazerOP/imgui-desktop/glcontext"
	"github.com/PazerOP/imgui-desktop/gldriver/gogl"
	"github.com/PazerOP/imgui-desktop/gui/imguibackend"
	"github.com/PazerOP/imgui-desktop/platform"
	"github.com/PazerOP/imgui-desktop/platform/glfwplatform"
	"github.com/PazerOP/imgui-desktop/platform/sdlplatform"
)

func newBackend(name string, cfg imguidesktop.Config) (imguidesktop.Backend, error) {
	var (
		p   platform.Platform
		err error
	)
	switch name {
	case "sdl":
		p, err = sdlplatform.New()
	case "glfw":
		candidates := make([]platform.GLAttributes, 0, len(cfg.GL.Attempts))
		for _, a := range cfg.GL.Attempts {
			candidates = append(candidates, a.Attributes())
		}
		p, err = glfwplatform.New(candidates...)
	default:
		return imguidesktop.Backend{}, fmt.Errorf("unknown backend %q, want sdl or glfw", name)
	}
	if err != nil {
		return imguidesktop.Backend{}, err
	}

	return imguidesktop.Backend{
		Platform: p,
		GL:       gogl.New(),
		GUI:      imguibackend.New(),
		Registry: glcontext.NewRegistry(p, cfg.GL.Attempts),
	}, nil
}
