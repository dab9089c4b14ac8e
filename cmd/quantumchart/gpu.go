//go:build gpu

package main

// The gpu build tag routes raster output through the wgpu accelerator.
// gg falls back to the CPU rasterizer when no adapter is available.
import _ "github.com/gogpu/gg/gpu"
