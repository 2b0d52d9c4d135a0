package plugin

// preamble is prepended to the user's generator source before compilation.
// It declares the callback table in C and wraps each slot in a helper so
// generator code reads naturally. The struct layout here must stay in
// lockstep with abiContext; the pair is the versioned ABI between the
// harness and every compiled generator.
const preamble = `#include <inttypes.h>
#include <stddef.h>

typedef int64_t i64;

typedef struct cpfuzz_state_t cpfuzz_state_t;

typedef struct cpfuzz_context_t {
	void (*put_i64)(cpfuzz_state_t*, i64);
	i64 (*gen_i64)(cpfuzz_state_t*, i64, i64);
	i64* (*gen_i64_array)(cpfuzz_state_t*, size_t, i64, i64);
	void (*gen_newline)(cpfuzz_state_t*);
	void (*put_ascii)(cpfuzz_state_t*, const char*);
	cpfuzz_state_t *state;
} cpfuzz_context_t;

static void put_i64(cpfuzz_context_t *ctx, i64 val) {
	ctx->put_i64(ctx->state, val);
}

static i64 gen_i64(cpfuzz_context_t *ctx, i64 lower, i64 higher) {
	return ctx->gen_i64(ctx->state, lower, higher);
}

static i64 *gen_i64_array(cpfuzz_context_t *ctx, size_t length, i64 lower, i64 higher) {
	return ctx->gen_i64_array(ctx->state, length, lower, higher);
}

static void gen_newline(cpfuzz_context_t *ctx) {
	ctx->gen_newline(ctx->state);
}

static void put_ascii(cpfuzz_context_t *ctx, const char *ascii) {
	ctx->put_ascii(ctx->state, ascii);
}

`
