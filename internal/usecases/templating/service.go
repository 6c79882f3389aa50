package templating

import (
	"context"
	"time"

	"github.com/vfg2006/order-template-api/internal/config"
	"github.com/vfg2006/order-template-api/internal/workbook"
	"github.com/vfg2006/order-template-api/pkg/log"
)

// Export é o arquivo pronto para ser enviado
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Service struct {
	fetcher   *Fetcher
	assembler *workbook.Assembler
	filename  string
	location  *time.Location
	now       func() time.Time
}

func NewService(cfg config.Template, reader ReferenceReader) (*Service, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	assembler := workbook.NewAssembler(workbook.Options{
		IncludeCommissionType: cfg.IncludeCommissionType,
		IncludeCreatorData:    cfg.IncludeCreatorData,
		IncludeExamples:       cfg.IncludeExamples,
		IncludeInstructions:   cfg.IncludeInstructions,
	})

	filename := cfg.Filename
	if filename == "" {
		filename = "order_template_complete.xlsx"
	}

	return &Service{
		fetcher:   NewFetcher(reader),
		assembler: assembler,
		filename:  filename,
		location:  location,
		now:       time.Now,
	}, nil
}

func (s *Service) ExportOrdersTemplate(ctx context.Context, userID string) (*Export, error) {
	dataset, err := s.fetcher.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := s.assembler.Render(dataset, s.today())
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Erro ao gerar o template de pedidos")
		return nil, NewSerializationError(userID, err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":   userID,
		"platforms": len(dataset.Platforms),
		"creators":  len(dataset.Creators),
		"products":  len(dataset.Products),
		"bytes":     len(content),
	}).Info("Template de pedidos gerado")

	return &Export{
		Filename:    s.filename,
		ContentType: workbook.ContentType,
		Content:     content,
	}, nil
}

// today é a data local no fuso configurado, representada como meia-noite UTC
// para que o valor gravado na célula não dependa do fuso do servidor
func (s *Service) today() time.Time {
	local := s.now().In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
