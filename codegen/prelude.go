package codegen

import (
	"github.com/alecthomas/jitx/codegen/cuda"
)

// Device implementations of the functions kernel bodies may call, emitted
// before the first helper that uses them.
var prelude = map[string]cuda.Raw{
	"ipow": `template <typename T>
__device__ T ipow(T x, T y) {
  T out = 1;
  while (y > 0) {
    if (y & 1) out *= x;
    x *= x;
    y >>= 1;
  }
  return out;
}`,
	"floordiv": `template <typename T>
__device__ T floordiv(T x, T y) {
  if (y == 0) return 0;
  T q = x / y;
  if (x % y != 0 && (x < 0) != (y < 0)) q--;
  return q;
}
__device__ float floordiv(float x, float y) { return floorf(x / y); }
__device__ double floordiv(double x, double y) { return floor(x / y); }`,
	"mod": `template <typename T>
__device__ T mod(T x, T y) {
  if (y == 0) return 0;
  T r = x % y;
  if (r != 0 && (r < 0) != (y < 0)) r += y;
  return r;
}
__device__ float mod(float x, float y) {
  float r = fmodf(x, y);
  if (r != 0 && (r < 0) != (y < 0)) r += y;
  return r;
}
__device__ double mod(double x, double y) {
  double r = fmod(x, y);
  if (r != 0 && (r < 0) != (y < 0)) r += y;
  return r;
}`,
}
