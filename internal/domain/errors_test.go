package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
)

func TestErrorf_EnvuelveElTipo(t *testing.T) {
	err := domain.Errorf(domain.ErrInsufficientStock, "saldo disponible %d, solicitado %d", 10, 12)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "stock insuficiente: saldo disponible 10, solicitado 12", err.Error())
	assert.Equal(t, "saldo disponible 10, solicitado 12", domain.Message(err))

	wrapped := fmt.Errorf("registrar salida: %w", err)
	assert.ErrorIs(t, wrapped, domain.ErrInsufficientStock)
	assert.Equal(t, "saldo disponible 10, solicitado 12", domain.Message(wrapped))
}

func TestMessage_ErrorPlano(t *testing.T) {
	assert.Equal(t, "boom", domain.Message(errors.New("boom")))
}
