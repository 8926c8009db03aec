package main

import (
	pqlite "github.com/alnah/go-pqlite"
)

// converterPool adapts pqlite.ConverterPool to the Pool interface.
type converterPool struct {
	pool *pqlite.ConverterPool
}

// newConverterPool creates a pool of n converters built with opts.
func newConverterPool(n int, opts ...pqlite.Option) *converterPool {
	return &converterPool{pool: pqlite.NewConverterPool(n, opts...)}
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// Acquire gets a converter, creating one if needed.
func (p *converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release returns a converter obtained from Acquire.
func (p *converterPool) Release(conv CLIConverter) {
	if c, ok := conv.(*pqlite.Converter); ok {
		p.pool.Release(c)
	}
}

// Size returns the pool capacity.
func (p *converterPool) Size() int {
	return p.pool.Size()
}

// Close releases all browser resources.
func (p *converterPool) Close() error {
	return p.pool.Close()
}
