package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack-survival/internal/deck"
	"github.com/lox/blackjack-survival/internal/game"
)

// ErrUnknownCommand is returned for input that names no command.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one parsed line of player input. At most one of Intent, Quit
// and Help is set; an empty Command means there was nothing to do.
type Command struct {
	Intent game.Intent
	Quit   bool
	Help   bool
}

// HelpText lists the commands understood by ParseCommand.
const HelpText = `Commands:
  hit (h)                 draw a card
  stand (s)               settle the hand
  buy health <n>          buy a health pack (5, 15 or 30)
  buy hearts | clubs      buy a power-up
  remove <n | card>       remove an offered card, by number or name (e.g. remove 2, remove Q♠)
  close (c)               leave the shop
  new (n)                 start a new game
  quit (q)                exit`

// ParseCommand turns a line of input into a command. Costs are looked up in
// the rules catalogue; offers resolve numeric removal choices.
func ParseCommand(input string, rules game.Rules, offers []deck.Card) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, nil
	}

	verb, args := fields[0], fields[1:]
	if verb == "buy" && len(args) > 0 {
		verb, args = args[0], args[1:]
	}

	switch verb {
	case "h", "hit":
		return Command{Intent: game.Hit{}}, nil
	case "s", "stand":
		return Command{Intent: game.Stand{}}, nil
	case "health", "heal", "hp":
		return parseHealth(args, rules)
	case "hearts", "heartsbonus":
		return parsePowerUp(game.HeartsBonus, rules)
	case "clubs", "clubsbonus":
		return parsePowerUp(game.ClubsBonus, rules)
	case "r", "remove":
		return parseRemove(args, offers)
	case "c", "close", "leave", "done":
		return Command{Intent: game.CloseShop{}}, nil
	case "n", "new", "restart":
		return Command{Intent: game.StartNewGame{}}, nil
	case "q", "quit", "exit":
		return Command{Quit: true}, nil
	case "?", "help":
		return Command{Help: true}, nil
	default:
		return Command{}, fmt.Errorf("%w %q, type help for a list", ErrUnknownCommand, verb)
	}
}

func parseHealth(args []string, rules game.Rules) (Command, error) {
	if len(args) != 1 {
		return Command{}, fmt.Errorf("usage: buy health <amount>")
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, fmt.Errorf("invalid health amount %q", args[0])
	}
	for _, p := range rules.HealthPacks {
		if p.Amount == amount {
			return Command{Intent: game.BuyHealth{Amount: p.Amount, Cost: p.Cost}}, nil
		}
	}
	return Command{}, fmt.Errorf("no %d health pack for sale", amount)
}

func parsePowerUp(id game.PowerUpID, rules game.Rules) (Command, error) {
	for _, p := range rules.PowerUps {
		if p.ID == id {
			return Command{Intent: game.BuyPowerUp{ID: p.ID, Name: p.Name, Cost: p.Cost}}, nil
		}
	}
	return Command{}, fmt.Errorf("no %s power-up for sale", id)
}

func parseRemove(args []string, offers []deck.Card) (Command, error) {
	if len(args) != 1 {
		return Command{}, fmt.Errorf("usage: remove <number or card>")
	}
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n < 1 || n > len(offers) {
			return Command{}, fmt.Errorf("pick a card between 1 and %d", len(offers))
		}
		return Command{Intent: game.RemoveCard{Card: offers[n-1]}}, nil
	}
	c, err := deck.ParseCard(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Intent: game.RemoveCard{Card: c}}, nil
}
