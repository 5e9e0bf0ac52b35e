package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Gurkenlor3nz/vokaba/internal/config"
	"github.com/Gurkenlor3nz/vokaba/internal/engine"
	"github.com/Gurkenlor3nz/vokaba/internal/exercise"
	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
	"github.com/Gurkenlor3nz/vokaba/internal/session"
)

var learnCmd = &cobra.Command{
	Use:   "learn [stack]",
	Short: "Start a learning session",
	Long:  "Runs a line-based learning session over one stack, or all stacks when none is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLearn,
}

// errQuit signals a user-requested exit from inside a round.
var errQuit = fmt.Errorf("quit")

func runLearn(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	stackRef := session.AllStacks
	if len(args) == 1 {
		stackRef = args[0]
	}

	eng := engine.New(cfg, st.Stacks(), st.Meta(), logger,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	if err := eng.Start(stackRef); err != nil {
		return err
	}
	defer eng.Exit()

	d := &driver{
		eng: eng,
		in:  bufio.NewScanner(os.Stdin),
		out: cmd.OutOrStdout(),
	}
	if err := d.loop(); err != nil && err != errQuit {
		return err
	}
	return eng.Exit()
}

// driver is the thin line-based front end: it renders cards as text and
// translates input lines into round calls. All grading lives in the
// exercise package; all state transitions in the engine.
type driver struct {
	eng *engine.Engine
	in  *bufio.Scanner
	out io.Writer
}

func (dr *driver) loop() error {
	fmt.Fprintln(dr.out, `Type "q" at any prompt to quit.`)
	for {
		card, err := dr.eng.Next()
		if err != nil {
			return err
		}
		if err := dr.playCard(card); err != nil {
			return err
		}
	}
}

func (dr *driver) playCard(card *engine.Card) error {
	fmt.Fprintln(dr.out)
	switch round := card.Round.(type) {
	case *exercise.Flashcard:
		return dr.playFlashcard(round)
	case *exercise.MultipleChoice:
		return dr.playMultipleChoice(round)
	case *exercise.ConnectPairs:
		return dr.playConnectPairs(round)
	case *exercise.LetterSalad:
		return dr.playLetterSalad(round)
	case *exercise.SyllableSalad:
		return dr.playSyllableSalad(round)
	case *exercise.Typing:
		return dr.playTyping(round)
	default:
		return fmt.Errorf("unknown round type %T", round)
	}
}

// readLine returns the next trimmed input line; "q" aborts the session.
func (dr *driver) readLine(prompt string) (string, error) {
	fmt.Fprint(dr.out, prompt)
	if !dr.in.Scan() {
		return "", errQuit
	}
	line := strings.TrimSpace(dr.in.Text())
	if line == "q" {
		return "", errQuit
	}
	return line, nil
}

// readRating maps 1-4 input to the rating tiers.
func (dr *driver) readRating() (knowledge.Rating, error) {
	for {
		line, err := dr.readLine("rate 1=very hard 2=hard 3=easy 4=very easy> ")
		if err != nil {
			return 0, err
		}
		switch line {
		case "1":
			return knowledge.RatingVeryHard, nil
		case "2":
			return knowledge.RatingHard, nil
		case "3":
			return knowledge.RatingEasy, nil
		case "4":
			return knowledge.RatingVeryEasy, nil
		}
		fmt.Fprintln(dr.out, "enter 1-4")
	}
}

// apply forwards a result to the engine and renders summary output.
func (dr *driver) apply(res exercise.Result) error {
	out, err := dr.eng.Apply(res)
	if err != nil {
		return err
	}
	if out.Summary != nil {
		s := out.Summary
		fmt.Fprintf(dr.out, "\n--- session summary: %d cards, %d correct, %d wrong ---\n",
			s.CardsDone, s.Correct, s.Wrong)
	}
	return nil
}

func (dr *driver) playFlashcard(fc *exercise.Flashcard) error {
	fmt.Fprintln(dr.out, "Flashcard:", fc.Prompt())
	if _, err := dr.readLine("press enter to flip> "); err != nil {
		return err
	}
	fmt.Fprintln(dr.out, "Answer:", fc.Answer())
	r, err := dr.readRating()
	if err != nil {
		return err
	}
	return dr.apply(fc.Rate(r, dr.eng.Deltas()))
}

func (dr *driver) playMultipleChoice(mc *exercise.MultipleChoice) error {
	fmt.Fprintln(dr.out, "Which translation fits:", mc.Entry.OwnText)
	for i, c := range mc.Choices {
		fmt.Fprintf(dr.out, "  %d) %s\n", i+1, c.ForeignText)
	}
	for {
		line, err := dr.readLine("choice> ")
		if err != nil {
			return err
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 1 || idx > len(mc.Choices) {
			fmt.Fprintln(dr.out, "enter a listed number")
			continue
		}
		res := mc.Answer(idx-1, dr.eng.Deltas())
		if res.WrongStep {
			fmt.Fprintln(dr.out, "wrong — it was:", mc.Entry.ForeignText)
		} else {
			fmt.Fprintln(dr.out, "correct")
		}
		return dr.apply(res)
	}
}

func (dr *driver) playConnectPairs(cp *exercise.ConnectPairs) error {
	fmt.Fprintln(dr.out, "Connect the pairs (enter: <left> <right>):")
	for {
		for i := 0; i < exercise.PairCount; i++ {
			mark := " "
			if cp.Matched(i) {
				mark = "x"
			}
			fmt.Fprintf(dr.out, "  [%s] %d) %-20s %d) %s\n", mark, i+1,
				cp.Entries[cp.Prompts[i]].OwnText, i+1,
				cp.Entries[cp.Answers[i]].ForeignText)
		}
		line, err := dr.readLine("pair> ")
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Fprintln(dr.out, "enter two numbers")
			continue
		}
		p, err1 := strconv.Atoi(fields[0])
		a, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil || p < 1 || a < 1 || p > exercise.PairCount || a > exercise.PairCount {
			fmt.Fprintln(dr.out, "enter two numbers 1-5")
			continue
		}
		res := cp.Match(p-1, a-1, dr.eng.Deltas())
		if res.WrongStep {
			fmt.Fprintln(dr.out, "no match")
		}
		if err := dr.apply(res); err != nil {
			return err
		}
		// The feedback lock exists for tap UIs; a line driver unlocks
		// right away.
		cp.Unlock()
		if res.Done {
			return nil
		}
	}
}

func (dr *driver) playLetterSalad(ls *exercise.LetterSalad) error {
	fmt.Fprintln(dr.out, "Letter salad for:", ls.Entry.OwnText)
	for {
		for i, r := range ls.Tiles {
			if ls.Used(i) {
				fmt.Fprintf(dr.out, "  %d) -\n", i+1)
			} else {
				fmt.Fprintf(dr.out, "  %d) %q\n", i+1, string(r))
			}
		}
		line, err := dr.readLine("tile (or s=skip)> ")
		if err != nil {
			return err
		}
		var res exercise.Result
		if line == "s" {
			res = ls.Skip(dr.eng.Deltas())
			fmt.Fprintln(dr.out, "it was:", string(ls.Target))
		} else {
			idx, convErr := strconv.Atoi(line)
			if convErr != nil || idx < 1 || idx > len(ls.Tiles) {
				fmt.Fprintln(dr.out, "enter a tile number or s")
				continue
			}
			res = ls.Tap(idx-1, dr.eng.Deltas())
			if res.WrongStep {
				fmt.Fprintln(dr.out, "not that one")
			}
		}
		if err := dr.apply(res); err != nil {
			return err
		}
		if res.Done {
			return nil
		}
	}
}

func (dr *driver) playSyllableSalad(ss *exercise.SyllableSalad) error {
	fmt.Fprint(dr.out, "Syllable salad for:")
	for _, e := range ss.Words() {
		fmt.Fprintf(dr.out, " %q", e.OwnText)
	}
	fmt.Fprintln(dr.out)
	for {
		texts, used := ss.Tiles()
		for i, txt := range texts {
			if used[i] {
				fmt.Fprintf(dr.out, "  %d) -\n", i+1)
			} else {
				fmt.Fprintf(dr.out, "  %d) %s\n", i+1, txt)
			}
		}
		line, err := dr.readLine("tile (or s=skip)> ")
		if err != nil {
			return err
		}
		var res exercise.Result
		if line == "s" {
			res = ss.Skip(dr.eng.Deltas())
		} else {
			idx, convErr := strconv.Atoi(line)
			if convErr != nil || idx < 1 || idx > len(texts) {
				fmt.Fprintln(dr.out, "enter a tile number or s")
				continue
			}
			res = ss.Tap(idx-1, dr.eng.Deltas())
			if res.WrongStep {
				fmt.Fprintln(dr.out, "not that one")
			}
		}
		if err := dr.apply(res); err != nil {
			return err
		}
		if res.Done {
			return nil
		}
	}
}

func (dr *driver) playTyping(ty *exercise.Typing) error {
	fmt.Fprintln(dr.out, "Type the translation of:", ty.Entry.OwnText)
	for {
		line, err := dr.readLine("answer (or s=skip)> ")
		if err != nil {
			return err
		}
		var res exercise.Result
		if line == "s" {
			res = ty.Skip(dr.eng.Deltas())
			fmt.Fprintln(dr.out, "it was:", ty.Entry.ForeignText)
		} else {
			res = ty.Submit(line, dr.eng.Deltas())
			if res.WrongStep {
				fmt.Fprintln(dr.out, "not quite, try again")
			}
		}
		if err := dr.apply(res); err != nil {
			return err
		}
		if res.NeedsRating {
			r, err := dr.readRating()
			if err != nil {
				return err
			}
			res = ty.Rate(r, dr.eng.Deltas())
			if err := dr.apply(res); err != nil {
				return err
			}
		}
		if res.Done {
			return nil
		}
	}
}
