package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth      = 1200
	imageHeight     = 800
	headerHeight    = 70
	leftLabelsWidth = 70
	dayPaddingX     = 6
	blockRadius     = 6.0
	totalDays       = 7
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	headerColor     = color.RGBA{80, 85, 90, 220}
	hourLabelColor  = color.RGBA{110, 115, 120, 200}
	hourLineColor   = color.NRGBA{200, 200, 200, 255}
	evenDayColor    = color.NRGBA{240, 240, 240, 255}
	oddDayColor     = color.NRGBA{230, 230, 230, 255}
	onlineColor     = color.RGBA{133, 193, 85, 220}
	offlineColor    = color.RGBA{120, 170, 255, 220}
	blockTextColor  = color.RGBA{20, 24, 28, 230}
)

// WeekImage рисует недельную сетку блоков расписания группы и
// возвращает PNG
func WeekImage(group *model.Group, blocks []*model.ScheduleBlock) ([]byte, error) {
	minHour, maxHour := hourBounds(blocks)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	title := fmt.Sprintf("%s — weekly schedule", group.Name)
	dc.SetColor(headerColor)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/3, 0.5, 0.5)

	dayWidth := float64(imageWidth-leftLabelsWidth) / totalDays
	gridTop := float64(headerHeight)
	gridHeight := float64(imageHeight) - gridTop
	hourHeight := gridHeight / float64(maxHour-minHour+1)

	// Колонки дней с чередующейся заливкой и подписями
	for day := 0; day < totalDays; day++ {
		x := float64(leftLabelsWidth) + float64(day)*dayWidth

		if day%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, gridTop, dayWidth, gridHeight)
		dc.Fill()

		name := model.Weekday(day + 1).String()
		dc.SetColor(headerColor)
		dc.DrawStringAnchored(name, x+dayWidth/2, gridTop-14, 0.5, 0.5)
	}

	// Часовые линии и подписи слева
	for hour := minHour; hour <= maxHour; hour++ {
		y := gridTop + float64(hour-minHour)*hourHeight

		dc.SetColor(hourLineColor)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hour), leftLabelsWidth/2, y+hourHeight/2, 0.5, 0.5)
	}

	// Сами блоки
	for _, block := range blocks {
		day := int(block.Weekday) - 1
		if day < 0 || day >= totalDays {
			continue
		}

		x := float64(leftLabelsWidth) + float64(day)*dayWidth + dayPaddingX
		w := dayWidth - 2*dayPaddingX

		startY := gridTop + (float64(block.StartTime)/60-float64(minHour))*hourHeight
		endY := gridTop + (float64(block.EndTime)/60-float64(minHour))*hourHeight
		h := endY - startY
		if h < 12 {
			h = 12
		}

		if block.IsOnline {
			dc.SetColor(onlineColor)
		} else {
			dc.SetColor(offlineColor)
		}
		dc.DrawRoundedRectangle(x, startY, w, h, blockRadius)
		dc.Fill()

		label := fmt.Sprintf("%s–%s", block.StartTime, block.EndTime)
		if !block.IsOnline && block.Location != "" {
			label += " " + block.Location
		}
		dc.SetColor(blockTextColor)
		dc.DrawStringAnchored(label, x+w/2, startY+h/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}

	return buf.Bytes(), nil
}

// hourBounds подбирает видимый диапазон часов под блоки
func hourBounds(blocks []*model.ScheduleBlock) (int, int) {
	minHour, maxHour := defaultMinHour, defaultMaxHour

	for _, block := range blocks {
		if block.StartTime.Hour() < minHour {
			minHour = block.StartTime.Hour()
		}
		if block.EndTime.Hour()+1 > maxHour {
			maxHour = block.EndTime.Hour() + 1
		}
	}

	return minHour, maxHour
}
